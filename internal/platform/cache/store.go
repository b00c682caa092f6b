package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matchvault/fiveaside/internal/platform/resilience"
)

// Dependency types for cached aggregates. Readers pick a TTL from this tag
// rather than hard-coding one per key.
const (
	DependencyMatchReport    = "match_report"
	DependencyMatchResult    = "match_result"
	DependencySquadSelection = "squad_selection"
)

// DefaultTTLs maps a dependency type to how long a cached read stays fresh.
func DefaultTTLs() map[string]time.Duration {
	return map[string]time.Duration{
		DependencyMatchReport:    30 * time.Minute,
		DependencyMatchResult:    time.Hour,
		DependencySquadSelection: 5 * time.Minute,
	}
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache with singleflight loading. It is injected
// wherever caching is needed; there is no package-level singleton.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttlByType  map[string]time.Duration
	defaultTTL time.Duration
	flight     resilience.SingleFlight
}

func NewStore(defaultTTL time.Duration, ttlByType map[string]time.Duration) *Store {
	s := &Store{
		defaultTTL: defaultTTL,
		ttlByType:  make(map[string]time.Duration, len(ttlByType)),
	}
	for depType, ttl := range ttlByType {
		s.ttlByType[depType] = ttl
	}
	s.Initialize()
	return s
}

// Initialize resets the store to an empty, usable state.
func (s *Store) Initialize() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Clear drops every cached entry. TTL configuration is retained.
func (s *Store) Clear() {
	s.Initialize()
}

func (s *Store) ttlFor(dependencyType string) time.Duration {
	if ttl, ok := s.ttlByType[dependencyType]; ok {
		return ttl
	}
	return s.defaultTTL
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key, dependencyType string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl := s.ttlFor(dependencyType); ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, loading and caching it on a
// miss. Concurrent misses for the same key share one loader call.
func (s *Store) GetOrLoad(ctx context.Context, key, dependencyType string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, dependencyType, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
