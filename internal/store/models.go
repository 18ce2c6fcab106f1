package store

import (
	"encoding/json"
	"time"
)

// Message sender roles.
const (
	SenderUser   = "user"
	SenderSystem = "system"
)

// Document file-type classifications, derived from the upload's extension.
const (
	FileTypePDF   = "pdf"
	FileTypeImage = "image"
	FileTypeDoc   = "doc"
	FileTypeOther = "other"
)

// Document verification lifecycle.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

type User struct {
	ID           string    `json:"id"` // UUID
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose this in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// Thread is the single running conversation for one user identifier.
// At most one thread exists per user id in whichever store holds it.
type Thread struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        string    `json:"id"` // UUID
	UserID    string    `json:"-"`
	Sender    string    `json:"sender"` // "user" or "system"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Document struct {
	ID           string          `json:"id"` // UUID
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	FilePath     string          `json:"file_url"`
	OriginalName string          `json:"original_name"`
	FileSize     int64           `json:"file_size"`
	MimeType     string          `json:"mimetype"`
	Department   string          `json:"department"`
	FileType     string          `json:"file_type"`
	Status       string          `json:"status"`
	Verification json.RawMessage `json:"verification,omitempty"`
	UserID       string          `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Verification is the result blob attached when a document is verified.
type Verification struct {
	Verified  bool      `json:"verified"`
	Score     int       `json:"score"`
	Issues    []string  `json:"issues"`
	Timestamp time.Time `json:"timestamp"`
}
