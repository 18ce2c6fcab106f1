package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore is the primary persistence collaborator for users, threads and
// documents.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY, -- UUID
        name TEXT NOT NULL,
        email TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS threads (
        user_id TEXT PRIMARY KEY, -- one thread per user identifier
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY, -- UUID
        user_id TEXT NOT NULL,
        sender TEXT NOT NULL CHECK (sender IN ('user', 'system')),
        content TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (user_id) REFERENCES threads (user_id)
    );

    CREATE TABLE IF NOT EXISTS documents (
        id TEXT PRIMARY KEY, -- UUID
        title TEXT NOT NULL,
        description TEXT NOT NULL,
        file_path TEXT NOT NULL,
        original_name TEXT NOT NULL,
        file_size INTEGER NOT NULL,
        mime_type TEXT NOT NULL,
        department TEXT NOT NULL DEFAULT 'general',
        file_type TEXT NOT NULL CHECK (file_type IN ('pdf', 'image', 'doc', 'other')),
        status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'verified', 'rejected')),
        verification TEXT,
        user_id TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) UserByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?", id))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Thread methods

func (s *SQLiteStore) Thread(ctx context.Context, userID string) (*Thread, []Message, error) {
	var thread Thread
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, created_at, updated_at FROM threads WHERE user_id = ?", userID).
		Scan(&thread.UserID, &thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil // No thread yet for this user
		}
		return nil, nil, fmt.Errorf("failed to query thread: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, sender, content, created_at FROM messages WHERE user_id = ? ORDER BY created_at ASC, id ASC", userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Sender, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}
	return &thread, messages, nil
}

func (s *SQLiteStore) Append(ctx context.Context, userID string, msgs ...Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
        INSERT INTO threads (user_id, created_at, updated_at) VALUES (?, ?, ?)
        ON CONFLICT (user_id) DO UPDATE SET updated_at = excluded.updated_at`,
		userID, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert thread: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO messages (id, user_id, sender, content, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare message insert: %w", err)
	}
	defer stmt.Close()

	for i := range msgs {
		msg := &msgs[i]
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = now
		}
		msg.UserID = userID
		if _, err := stmt.ExecContext(ctx, msg.ID, msg.UserID, msg.Sender, msg.Content, msg.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}
	return tx.Commit()
}

// Document methods

func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Department == "" {
		doc.Department = "general"
	}
	if doc.Status == "" {
		doc.Status = StatusPending
	}
	doc.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO documents (id, title, description, file_path, original_name, file_size,
            mime_type, department, file_type, status, user_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Description, doc.FilePath, doc.OriginalName, doc.FileSize,
		doc.MimeType, doc.Department, doc.FileType, doc.Status, doc.UserID, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DocumentsByUser(ctx context.Context, userID string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, description, file_path, original_name, file_size, mime_type,
            department, file_type, status, verification, user_id, created_at
        FROM documents WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

func (s *SQLiteStore) DocumentByID(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, title, description, file_path, original_name, file_size, mime_type,
            department, file_type, status, verification, user_id, created_at
        FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}
	return doc, nil
}

func (s *SQLiteStore) SetVerification(ctx context.Context, id, status string, verification []byte) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET status = ?, verification = ? WHERE id = ?",
		status, string(verification), id)
	if err != nil {
		return fmt.Errorf("failed to update document verification: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("document not found, verification not updated")
	}
	return nil
}

func scanDocument(scan func(dest ...any) error) (*Document, error) {
	var doc Document
	var verification sql.NullString
	err := scan(&doc.ID, &doc.Title, &doc.Description, &doc.FilePath, &doc.OriginalName,
		&doc.FileSize, &doc.MimeType, &doc.Department, &doc.FileType, &doc.Status,
		&verification, &doc.UserID, &doc.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan document row: %w", err)
	}
	if verification.Valid {
		doc.Verification = []byte(verification.String)
	}
	return &doc, nil
}
