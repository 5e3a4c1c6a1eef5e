// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/setlist/auth"
	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/store"
)

const invalidCredentials = "Invalid username or password."

type AuthHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAuthHandler(s *store.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: s, cfg: cfg}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		validationError(w, err)
		return
	}

	ctx := r.Context()

	// Check uniqueness up front for a precise message
	if _, err := h.store.FindUserByEmail(ctx, req.Email); err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Email already registered.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if _, err := h.store.FindUserByUsername(ctx, req.Username); err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost a race with a concurrent registration
			middleware.ErrorResponse(w, http.StatusConflict, h.conflictMessage(ctx, req.Email))
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Message:  "Thanks for registering!",
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		validationError(w, err)
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		slog.Warn("failed login", "user_id", user.ID, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	ttl := h.cfg.SessionTTL
	if req.RememberMe {
		ttl = h.cfg.RememberFor
	}
	expires := time.Now().Add(ttl)
	token := auth.IssueSessionToken(user.ID, expires, h.cfg.SessionSecret)
	middleware.SetSessionCookie(w, token, expires, req.RememberMe)

	slog.Info("user logged in", "user_id", user.ID, "remember_me", req.RememberMe)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "You have been logged out."})
}

// Secret handles GET /secret
func (h *AuthHandler) Secret(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Only authenticated users can do this! Try to log in or contact the site admin."})
}

// conflictMessage names the key a failed user insert collided on
func (h *AuthHandler) conflictMessage(ctx context.Context, email string) string {
	if _, err := h.store.FindUserByEmail(ctx, email); err == nil {
		return "Email already registered."
	}
	return "Username already taken"
}

func validationError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
		return
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
}
