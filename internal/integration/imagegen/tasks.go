package imagegen

import (
	"time"

	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// TaskStore is the transient record of in-flight and recently
// finished generation tasks. Entries expire after the configured TTL,
// so the store stays bounded without a manual cleanup call. It does
// not survive a process restart.
type TaskStore struct {
	cache *cache.Cache
}

func NewTaskStore(ttl, cleanupInterval time.Duration) *TaskStore {
	return &TaskStore{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (s *TaskStore) Put(task *entity.ImageTask) {
	copied := *task
	s.cache.SetDefault(task.ID, &copied)
}

func (s *TaskStore) Get(id string) (*entity.ImageTask, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	task := *(v.(*entity.ImageTask))
	return &task, true
}

func (s *TaskStore) Complete(id, url string) {
	if task, ok := s.Get(id); ok {
		task.Status = entity.TaskStatusCompleted
		task.Progress = 100
		task.URL = url
		s.Put(task)
	}
}

func (s *TaskStore) Fail(id string, err error) {
	if task, ok := s.Get(id); ok {
		task.Status = entity.TaskStatusFailed
		task.Error = err.Error()
		s.Put(task)
	}
}
