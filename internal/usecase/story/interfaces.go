package story

import (
	"context"

	"github.com/heyverne/verne-backend/internal/entity"
)

type ImageGenConnector interface {
	Generate(ctx context.Context, prompt, referencePhotoURL string) (*entity.ImageTask, error)
	TaskStatus(taskID string) (*entity.ImageTask, error)
}
