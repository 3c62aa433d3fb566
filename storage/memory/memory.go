// Package memory provides an in-memory GrantStore implementation.
// It is suitable for development, testing, and single-instance deployments.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/giantswarm/mcp-gate/storage"
)

// Store is an in-memory implementation of storage.GrantStore. Expired grants
// are rejected on Take immediately and reaped by a background loop.
type Store struct {
	mu     sync.Mutex
	grants map[string]*storage.Grant

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	logger          *slog.Logger
}

// Compile-time interface check
var _ storage.GrantStore = (*Store)(nil)

// New creates a new in-memory store with the default cleanup interval
// (1 minute).
func New() *Store {
	return NewWithInterval(time.Minute)
}

// NewWithInterval creates a new in-memory store with a custom cleanup
// interval. If cleanupInterval is 0 or negative, the default of 1 minute
// is used.
func NewWithInterval(cleanupInterval time.Duration) *Store {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	s := &Store{
		grants:          make(map[string]*storage.Grant),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
		logger:          slog.Default(),
	}

	go s.cleanupLoop()

	return s
}

// SetLogger sets a custom logger
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Stop terminates the background cleanup goroutine. Safe to call more than
// once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

// Put saves a grant under its code.
func (s *Store) Put(ctx context.Context, grant *storage.Grant) error {
	if grant == nil {
		return fmt.Errorf("grant cannot be nil")
	}
	if grant.Code == "" {
		return fmt.Errorf("grant code cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.grants[grant.Code] = grant
	return nil
}

// Take atomically retrieves and removes a grant. Unknown, already taken,
// and expired codes are indistinguishable to the caller.
func (s *Store) Take(ctx context.Context, code string) (*storage.Grant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, ok := s.grants[code]
	if !ok {
		return nil, storage.ErrGrantNotFound
	}
	delete(s.grants, code)

	if grant.Expired(time.Now()) {
		return nil, storage.ErrGrantNotFound
	}
	return grant, nil
}

// Len returns the number of stored grants, for tests and metrics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCleanup:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for code, grant := range s.grants {
		if grant.Expired(now) {
			delete(s.grants, code)
			cleaned++
		}
	}

	if cleaned > 0 {
		s.logger.Debug("Cleaned up expired grants", "count", cleaned)
	}
}
