package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/auth"
	"github.com/aura-labs/aura-api/internal/store"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondErr(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	existing, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to look up user", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if existing != nil {
		respondErr(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	user := &store.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondOK(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		respondErr(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to look up user", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondErr(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	user, err := h.users.UserByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get user", zap.String("user_id", id), zap.Error(err))
		respondErr(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if user == nil {
		respondErr(w, http.StatusNotFound, "User not found")
		return
	}

	respondOK(w, http.StatusOK, user)
}
