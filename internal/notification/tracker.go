// Package notification tracks which hot leads have already triggered an
// alert email and sends the alert for the ones that have not.
package notification

import (
	"context"
	"sync"
)

// NotifiedStore records the emails of hot leads that have been alerted on.
// Entries are only ever added, never removed.
type NotifiedStore interface {
	// Snapshot returns the current notified set.
	Snapshot(ctx context.Context) (map[string]struct{}, error)
	// MarkAll adds the given emails to the set.
	MarkAll(ctx context.Context, emails []string) error
}

// MemoryStore is the default process-local store. The set resets on
// restart, so a restart may re-alert on leads already seen.
type MemoryStore struct {
	mu       sync.RWMutex
	notified map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notified: make(map[string]struct{})}
}

func (s *MemoryStore) Snapshot(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]struct{}, len(s.notified))
	for email := range s.notified {
		snapshot[email] = struct{}{}
	}
	return snapshot, nil
}

func (s *MemoryStore) MarkAll(_ context.Context, emails []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, email := range emails {
		s.notified[email] = struct{}{}
	}
	return nil
}

var _ NotifiedStore = (*MemoryStore)(nil)
