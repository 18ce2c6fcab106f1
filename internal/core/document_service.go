package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/metrics"
	"github.com/aura-labs/aura-api/internal/store"
)

// DocumentService stores uploaded files on local disk and their metadata in
// the document store, and runs the (simulated) verification flow.
type DocumentService struct {
	docs      store.DocumentStore
	verifier  Verifier
	uploadDir string
	logger    *zap.Logger
}

func NewDocumentService(docs store.DocumentStore, verifier Verifier, uploadDir string, logger *zap.Logger) (*DocumentService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DocumentService{
		docs:      docs,
		verifier:  verifier,
		uploadDir: uploadDir,
		logger:    logger,
	}, nil
}

// Upload writes the file under the upload directory and creates the metadata
// record with status pending.
type Upload struct {
	Title        string
	Description  string
	Department   string
	UserID       string
	OriginalName string
	Size         int64
	MimeType     string
	Content      io.Reader
}

func (s *DocumentService) Upload(ctx context.Context, up Upload) (*store.Document, error) {
	name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(up.OriginalName))
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	written, err := io.Copy(dst, up.Content)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if up.Size == 0 {
		up.Size = written
	}

	doc := &store.Document{
		Title:        up.Title,
		Description:  up.Description,
		FilePath:     path,
		OriginalName: up.OriginalName,
		FileSize:     up.Size,
		MimeType:     up.MimeType,
		Department:   up.Department,
		FileType:     ClassifyFileType(up.OriginalName),
		Status:       store.StatusPending,
		UserID:       up.UserID,
	}
	if err := s.docs.CreateDocument(ctx, doc); err != nil {
		os.Remove(path)
		return nil, err
	}

	metrics.DocumentUploadsTotal.WithLabelValues(doc.FileType).Inc()
	s.logger.Info("document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("file_type", doc.FileType),
		zap.Int64("size", doc.FileSize))
	return doc, nil
}

func (s *DocumentService) ByUser(ctx context.Context, userID string) ([]store.Document, error) {
	return s.docs.DocumentsByUser(ctx, userID)
}

func (s *DocumentService) ByID(ctx context.Context, id string) (*store.Document, error) {
	return s.docs.DocumentByID(ctx, id)
}

// Verify runs the verification strategy and transitions the document to
// verified or rejected, attaching the result blob.
func (s *DocumentService) Verify(ctx context.Context, id string) (*store.Document, error) {
	doc, err := s.docs.DocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	result := s.verifier.Verify(doc)
	status := store.StatusVerified
	if !result.Verified {
		status = store.StatusRejected
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification result: %w", err)
	}
	if err := s.docs.SetVerification(ctx, id, status, blob); err != nil {
		return nil, err
	}

	metrics.DocumentVerificationsTotal.WithLabelValues(status).Inc()
	doc.Status = status
	doc.Verification = blob
	return doc, nil
}

// ClassifyFileType derives the coarse file-type classification from the
// upload's extension.
func ClassifyFileType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "jpg", "jpeg", "png", "gif":
		return store.FileTypeImage
	case "pdf":
		return store.FileTypePDF
	case "doc", "docx", "txt":
		return store.FileTypeDoc
	default:
		return store.FileTypeOther
	}
}
