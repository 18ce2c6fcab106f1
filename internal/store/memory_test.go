package store

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreThreadAbsent(t *testing.T) {
	s := NewMemoryStore()
	thread, messages, err := s.Thread(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Thread returned error: %v", err)
	}
	if thread != nil || messages != nil {
		t.Error("absent user must yield nil thread and nil messages")
	}
}

func TestMemoryStoreAppendCreatesAndOrders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Append(ctx, "u1", Message{Sender: SenderUser, Content: "one"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(ctx, "u1", Message{Sender: SenderSystem, Content: "two"}); err != nil {
		t.Fatal(err)
	}

	thread, messages, err := s.Thread(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if thread == nil {
		t.Fatal("thread should exist after append")
	}
	if len(messages) != 2 || messages[0].Content != "one" || messages[1].Content != "two" {
		t.Errorf("messages = %v, want insertion order preserved", messages)
	}
	for _, msg := range messages {
		if msg.ID == "" || msg.CreatedAt.IsZero() || msg.UserID != "u1" {
			t.Errorf("message not stamped: %+v", msg)
		}
	}
}

func TestMemoryStorePutIfAbsent(t *testing.T) {
	s := NewMemoryStore()

	s.PutIfAbsent("u1", Message{Sender: SenderUser, Content: "a"}, Message{Sender: SenderSystem, Content: "b"})
	_, messages, _ := s.Thread(context.Background(), "u1")
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	// A second put for the same user is a no-op, never a merge or replace.
	s.PutIfAbsent("u1", Message{Sender: SenderUser, Content: "c"})
	_, messages, _ = s.Thread(context.Background(), "u1")
	if len(messages) != 2 || messages[0].Content != "a" {
		t.Error("PutIfAbsent must not touch an existing entry")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Append(context.Background(), "u1", Message{Sender: SenderUser, Content: "original"})

	_, messages, _ := s.Thread(context.Background(), "u1")
	messages[0].Content = "mutated"

	_, again, _ := s.Thread(context.Background(), "u1")
	if again[0].Content != "original" {
		t.Error("Thread must return a copy, not the backing slice")
	}
}

func TestMemoryStoreConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(context.Background(), "u1", Message{Sender: SenderUser, Content: "m"})
		}()
	}
	wg.Wait()

	_, messages, _ := s.Thread(context.Background(), "u1")
	if len(messages) != 50 {
		t.Errorf("got %d messages after concurrent appends, want 50", len(messages))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
