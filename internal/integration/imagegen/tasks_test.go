package imagegen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(id string) *entity.ImageTask {
	return &entity.ImageTask{
		ID:        id,
		Status:    entity.TaskStatusGenerating,
		CreatedAt: time.Now(),
	}
}

func TestTaskStoreLifecycle(t *testing.T) {
	store := NewTaskStore(time.Minute, time.Minute)
	store.Put(newTask("img-1"))

	task, ok := store.Get("img-1")
	require.True(t, ok)
	assert.Equal(t, entity.TaskStatusGenerating, task.Status)
	assert.Equal(t, 0, task.Progress)

	store.Complete("img-1", "/uploads/img-1.png")

	task, ok = store.Get("img-1")
	require.True(t, ok)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	assert.Equal(t, 100, task.Progress)
	assert.Equal(t, "/uploads/img-1.png", task.URL)
}

func TestTaskStoreFail(t *testing.T) {
	store := NewTaskStore(time.Minute, time.Minute)
	store.Put(newTask("img-2"))

	store.Fail("img-2", errors.New("provider unavailable"))

	task, ok := store.Get("img-2")
	require.True(t, ok)
	assert.Equal(t, entity.TaskStatusFailed, task.Status)
	assert.Equal(t, "provider unavailable", task.Error)
}

func TestTaskStoreMiss(t *testing.T) {
	store := NewTaskStore(time.Minute, time.Minute)

	_, ok := store.Get("nope")
	assert.False(t, ok)

	// Resolving an unknown task is a no-op, not a panic.
	store.Complete("nope", "/uploads/x.png")
	store.Fail("nope", errors.New("x"))
}

func TestTaskStoreReturnsCopies(t *testing.T) {
	store := NewTaskStore(time.Minute, time.Minute)
	store.Put(newTask("img-3"))

	task, ok := store.Get("img-3")
	require.True(t, ok)
	task.Status = entity.TaskStatusFailed

	again, ok := store.Get("img-3")
	require.True(t, ok)
	assert.Equal(t, entity.TaskStatusGenerating, again.Status)
}

func TestTaskStoreExpiry(t *testing.T) {
	store := NewTaskStore(10*time.Millisecond, time.Minute)
	store.Put(newTask("img-4"))

	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get("img-4")
	assert.False(t, ok)
}

func TestMockConnectorCompletesImmediately(t *testing.T) {
	store := NewTaskStore(time.Minute, time.Minute)
	mock := NewMockConnector(store, nil)

	task, err := mock.Generate(context.Background(), "a child astronaut", "")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	assert.NotEmpty(t, task.URL)

	fetched, err := mock.TaskStatus(task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, fetched.Status)

	_, err = mock.TaskStatus("missing")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}
