package store

import "context"

// ThreadStore is the contract shared by the primary (SQLite) and secondary
// (in-memory) chat stores. The chat service picks one per request: it starts
// on the primary and drops to the secondary when a primary write fails.
type ThreadStore interface {
	// Thread returns the thread and its messages in insertion order, or
	// (nil, nil, nil) when no thread exists for the user id.
	Thread(ctx context.Context, userID string) (*Thread, []Message, error)
	// Append creates the thread if needed and appends the given messages.
	Append(ctx context.Context, userID string, msgs ...Message) error
}

type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *Document) error
	DocumentsByUser(ctx context.Context, userID string) ([]Document, error)
	DocumentByID(ctx context.Context, id string) (*Document, error)
	// SetVerification transitions the document's status and attaches the
	// verification blob. The transition happens exactly once; callers must
	// not re-verify.
	SetVerification(ctx context.Context, id, status string, verification []byte) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)
}
