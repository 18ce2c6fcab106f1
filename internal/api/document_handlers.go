package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/core"
)

// maxUploadSize caps multipart uploads at 10MB, matching the limit the chat
// assistant advertises to users.
const maxUploadSize = 10 << 20

func (h *APIHandler) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm's argument only bounds memory residency; the reader
	// wrapper is what actually rejects oversized bodies.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondErr(w, http.StatusRequestEntityTooLarge, "File cannot be larger than 10MB")
			return
		}
		respondErr(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondErr(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		respondErr(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	if len(title) > 100 {
		respondErr(w, http.StatusBadRequest, "Title cannot be more than 100 characters")
		return
	}
	if len(description) > 500 {
		respondErr(w, http.StatusBadRequest, "Description cannot be more than 500 characters")
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		userID = core.AnonymousUserID
	}

	doc, err := h.documents.Upload(r.Context(), core.Upload{
		Title:        title,
		Description:  description,
		Department:   r.FormValue("department"),
		UserID:       userID,
		OriginalName: header.Filename,
		Size:         header.Size,
		MimeType:     header.Header.Get("Content-Type"),
		Content:      file,
	})
	if err != nil {
		h.logger.Error("document upload failed", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondOK(w, http.StatusCreated, doc)
}

func (h *APIHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = core.AnonymousUserID
	}

	docs, err := h.documents.ByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list documents", zap.String("user_id", userID), zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondList(w, http.StatusOK, len(docs), docs)
}

func (h *APIHandler) GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")

	doc, err := h.documents.ByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get document", zap.String("document_id", id), zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if doc == nil {
		respondErr(w, http.StatusNotFound, "Document not found")
		return
	}

	respondOK(w, http.StatusOK, doc)
}

func (h *APIHandler) VerifyDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")

	doc, err := h.documents.Verify(r.Context(), id)
	if err != nil {
		h.logger.Error("document verification failed", zap.String("document_id", id), zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if doc == nil {
		respondErr(w, http.StatusNotFound, "Document not found")
		return
	}

	respondOK(w, http.StatusOK, doc)
}
