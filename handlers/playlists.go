// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/resolver"
	"github.com/danielhkuo/setlist/store"
)

type PlaylistHandler struct {
	store    *store.Store
	resolver *resolver.Resolver
}

func NewPlaylistHandler(s *store.Store, res *resolver.Resolver) *PlaylistHandler {
	return &PlaylistHandler{store: s, resolver: res}
}

// CreatePlaylist handles POST /playlists
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this page.")
		return
	}

	var req models.CreatePlaylistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		validationError(w, err)
		return
	}

	ctx := r.Context()

	// Songs are picked from the catalog, never created here
	songs := make([]models.Song, 0, len(req.Songs))
	for _, title := range req.Songs {
		song, err := h.store.FindSongByTitle(ctx, title)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown song: "+title)
			return
		}
		if err != nil {
			slog.Error("failed to query song", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		songs = append(songs, *song)
	}

	playlist, err := h.resolver.Playlist(ctx, req.Name, songs, userID)
	if err != nil {
		slog.Error("failed to resolve playlist", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save playlist")
		return
	}

	slog.Info("playlist saved", "playlist_id", playlist.ID, "user_id", userID, "songs", len(playlist.Songs))

	middleware.JSONResponse(w, http.StatusCreated, playlistResponse(playlist))
}

// ListPlaylists handles GET /playlists
func (h *PlaylistHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this page.")
		return
	}

	playlists, err := h.store.ListPlaylistsByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list playlists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	links := make([]models.PlaylistLink, 0, len(playlists))
	for _, p := range playlists {
		links = append(links, models.PlaylistLink{Name: p.Name, URL: "/playlists/" + p.ID})
	}

	middleware.JSONResponse(w, http.StatusOK, models.PlaylistsResponse{Playlists: links})
}

// GetPlaylist handles GET /playlists/{id}
func (h *PlaylistHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this page.")
		return
	}

	playlist, err := h.store.GetPlaylist(r.Context(), r.PathValue("id"))
	// Someone else's playlist reads the same as a missing one
	if errors.Is(err, store.ErrNotFound) || (err == nil && playlist.UserID != userID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Playlist not found")
		return
	}
	if err != nil {
		slog.Error("failed to query playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, playlistResponse(playlist))
}

func playlistResponse(p *models.Playlist) models.PlaylistResponse {
	return models.PlaylistResponse{Name: p.Name, Songs: titles(p.Songs)}
}
