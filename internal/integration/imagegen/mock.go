package imagegen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector fakes the image provider for local runs and tests.
// Tasks complete instantly with a placeholder URL.
type MockConnector struct {
	tasks  *TaskStore
	logger *zap.Logger
}

func NewMockConnector(tasks *TaskStore, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		tasks:  tasks,
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, prompt, referencePhotoURL string) (*entity.ImageTask, error) {
	task := &entity.ImageTask{
		ID:        "img-" + uuid.New().String(),
		Status:    entity.TaskStatusGenerating,
		CreatedAt: time.Now(),
	}
	m.tasks.Put(task)

	ctxzap.Info(ctx, "[MOCK] generating illustration",
		zap.String("task_id", task.ID),
		zap.Int("prompt_length", len(prompt)),
		zap.Bool("has_reference_photo", referencePhotoURL != ""),
	)

	m.tasks.Complete(task.ID, "https://placehold.co/1024x1024/png?text=verne")

	completed, _ := m.tasks.Get(task.ID)
	return completed, nil
}

func (m *MockConnector) TaskStatus(taskID string) (*entity.ImageTask, error) {
	task, ok := m.tasks.Get(taskID)
	if !ok {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}
