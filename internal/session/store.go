// Package session keeps per-user conversation contexts with a TTL.
// Contexts are ephemeral working state, not durable history.
package session

import (
	"context"
	"sync"
	"time"

	"financial-hub/internal/models"
)

// Store holds conversation contexts keyed by user.
type Store interface {
	Get(ctx context.Context, userID int64) (*models.ConversationContext, error)
	Put(ctx context.Context, userID int64, conv *models.ConversationContext) error
	Delete(ctx context.Context, userID int64) error
}

type memoryEntry struct {
	conv      *models.ConversationContext
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when Redis is not
// configured or unreachable.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore initializes a new in-memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the stored context or nil when absent or expired
func (s *MemoryStore) Get(_ context.Context, userID int64) (*models.ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, userID)
		return nil, nil
	}
	return entry.conv, nil
}

// Put stores the context and resets its TTL
func (s *MemoryStore) Put(_ context.Context, userID int64, conv *models.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = memoryEntry{
		conv:      conv,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the context for a user
func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

// Sweep drops expired entries. Call it periodically; Get already skips
// expired entries so this only bounds memory.
func (s *MemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, userID)
		}
	}
}
