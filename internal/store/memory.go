package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the process-local secondary thread store. It holds chats for
// requests that could not reach the primary store. Contents are scoped to the
// process lifetime and never read back by history retrieval.
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string]*memoryThread
}

type memoryThread struct {
	thread   Thread
	messages []Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		threads: make(map[string]*memoryThread),
	}
}

func (s *MemoryStore) Thread(_ context.Context, userID string) (*Thread, []Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.threads[userID]
	if !exists {
		return nil, nil, nil
	}
	thread := entry.thread
	messages := make([]Message, len(entry.messages))
	copy(messages, entry.messages)
	return &thread, messages, nil
}

func (s *MemoryStore) Append(_ context.Context, userID string, msgs ...Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, exists := s.threads[userID]
	if !exists {
		entry = &memoryThread{
			thread: Thread{UserID: userID, CreatedAt: now, UpdatedAt: now},
		}
		s.threads[userID] = entry
	}
	entry.messages = append(entry.messages, stamp(userID, now, msgs)...)
	entry.thread.UpdatedAt = now
	return nil
}

// PutIfAbsent writes a fresh entry for the user only when none exists. It is
// the best-effort recovery for a failed final primary save: never a merge
// with existing in-memory history.
func (s *MemoryStore) PutIfAbsent(userID string, msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.threads[userID]; exists {
		return
	}
	now := time.Now()
	s.threads[userID] = &memoryThread{
		thread:   Thread{UserID: userID, CreatedAt: now, UpdatedAt: now},
		messages: stamp(userID, now, msgs),
	}
}

// Len reports how many user identifiers currently hold fallback history.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.threads)
}

func stamp(userID string, now time.Time, msgs []Message) []Message {
	stamped := make([]Message, len(msgs))
	for i, msg := range msgs {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = now
		}
		msg.UserID = userID
		stamped[i] = msg
	}
	return stamped
}
