package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"screener/internal/dataprocessing"
	"screener/pkg/contracts/domain"
)

// Session is one uploaded dataset held in memory until it expires or is
// deleted. The dataset itself is immutable; only LastAccess changes.
type Session struct {
	ID         string
	Filename   string
	Dataset    *domain.Dataset
	Stats      dataprocessing.ParseStats
	CreatedAt  time.Time
	LastAccess time.Time
}

// DatasetStore is an in-memory session store keyed by dataset ID.
type DatasetStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewDatasetStore creates a new in-memory dataset store
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session
func (s *DatasetStore) Create(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return ErrDatasetExists
	}

	s.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by ID and refreshes its last-access time.
func (s *DatasetStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrDatasetNotFound
	}

	session.LastAccess = time.Now()

	// Return a copy to prevent external modification
	sessionCopy := *session
	return &sessionCopy, nil
}

// Delete removes a session from the store
func (s *DatasetStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrDatasetNotFound
	}

	delete(s.sessions, id)
	return nil
}

// Count returns the number of live sessions
func (s *DatasetStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// CleanupExpired removes sessions idle for longer than ttl and returns how
// many were removed.
func (s *DatasetStore) CleanupExpired(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	deleted := 0

	for id, session := range s.sessions {
		if session.LastAccess.Before(cutoff) {
			delete(s.sessions, id)
			deleted++
		}
	}

	return deleted
}

// RunJanitor sweeps expired sessions every interval until ctx is cancelled.
// onSweep, if non-nil, receives the live session count after each sweep.
func (s *DatasetStore) RunJanitor(ctx context.Context, interval, ttl time.Duration, logger *slog.Logger, onSweep func(live int)) {
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted := s.CleanupExpired(ttl)
			if deleted > 0 {
				logger.InfoContext(ctx, "expired datasets removed",
					slog.Int("deleted", deleted),
					slog.Int("remaining", s.Count()),
				)
			}
			if onSweep != nil {
				onSweep(s.Count())
			}
		}
	}
}
