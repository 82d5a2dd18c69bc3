package cache

import (
	"context"
	"sync"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
)

// MemoryIdempotencyStore keeps claimed keys in a process-local map.
// Suitable for single-instance deployments and tests.
type MemoryIdempotencyStore struct {
	mu        sync.RWMutex
	entries   map[string]time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryIdempotencyStore creates the store and starts its expiry sweeper
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return newMemoryIdempotencyStore(5 * time.Minute)
}

func newMemoryIdempotencyStore(sweepEvery time.Duration) *MemoryIdempotencyStore {
	store := &MemoryIdempotencyStore{
		entries:  make(map[string]time.Time),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(sweepEvery)

	return store
}

// MarkProcessed claims key until ttl elapses.
// Returns false if the key is already claimed and not yet expired.
func (s *MemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expiresAt, exists := s.entries[key]; exists && now.Before(expiresAt) {
		return false, nil
	}

	s.entries[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether key is currently claimed
func (s *MemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, exists := s.entries[key]
	return exists && time.Now().Before(expiresAt), nil
}

// Release drops key so it can be claimed again
func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *MemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored keys, expired or not
func (s *MemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryIdempotencyStore) cleanupLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, key)
		}
	}
}

var _ shared.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
