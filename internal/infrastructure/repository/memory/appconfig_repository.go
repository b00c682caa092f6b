package memory

import (
	"context"
	"sync"
)

type AppConfigRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewAppConfigRepository(values map[string]string) *AppConfigRepository {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &AppConfigRepository{values: copied}
}

func (r *AppConfigRepository) GetAll(context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *AppConfigRepository) Set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
}
