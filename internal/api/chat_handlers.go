package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/core"
)

type SendMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// SendMessageHandler accepts one chat message and always answers 200 with a
// reply unless the message itself is missing; backend failures degrade inside
// the chat service.
func (h *APIHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply, err := h.chat.SendMessage(r.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, core.ErrEmptyMessage) {
			respondErr(w, http.StatusBadRequest, "Message is required")
			return
		}
		h.logger.Error("unexpected error sending message", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondOK(w, http.StatusOK, map[string]string{"message": reply})
}

func (h *APIHandler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	messages, err := h.chat.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load chat history", zap.String("user_id", userID), zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"messages": messages})
}

// Credential-echo endpoints. These hand the server's provider credentials to
// any caller; they exist for the demo frontend and each hit is logged.

func (h *APIHandler) GeminiKeyHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("serving Gemini API key to client", zap.String("remote", r.RemoteAddr))
	respondOK(w, http.StatusOK, map[string]string{"apiKey": h.cfg.GeminiAPIKey})
}

func (h *APIHandler) OpenAIKeyHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("serving OpenAI API key to client", zap.String("remote", r.RemoteAddr))
	respondOK(w, http.StatusOK, map[string]string{"apiKey": h.cfg.OpenAIAPIKey})
}

func (h *APIHandler) GoogleAPIHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Warn("serving Google API credentials to client", zap.String("remote", r.RemoteAddr))
	respondOK(w, http.StatusOK, map[string]string{
		"apiKey":         h.cfg.GoogleAPIKey,
		"searchEngineId": h.cfg.SearchEngineID,
	})
}

// Provider connectivity probes.

func (h *APIHandler) TestOpenAIHandler(w http.ResponseWriter, r *http.Request) {
	message, model, err := h.openAI.Probe(r.Context())
	if err != nil {
		h.logger.Warn("OpenAI probe failed", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"message": message, "model": model})
}

func (h *APIHandler) TestGoogleSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = "MERN stack"
	}

	items, total, err := h.search.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("Google search probe failed", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondOK(w, http.StatusOK, map[string]any{"items": items, "totalResults": total})
}
