// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/store"
)

// CatalogHandler serves the read-only artist and album reports.
type CatalogHandler struct {
	store *store.Store
}

func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{store: s}
}

// ListArtists handles GET /artists
func (h *CatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.store.ListArtists(r.Context())
	if err != nil {
		slog.Error("failed to list artists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ArtistsResponse{Artists: artists})
}

// ArtistSongs handles GET /artists/{name}/songs
func (h *CatalogHandler) ArtistSongs(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "artist name is required")
		return
	}

	ctx := r.Context()

	artist, err := h.store.FindArtistByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Artist not found")
		return
	}
	if err != nil {
		slog.Error("failed to query artist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	songs, err := h.store.ListSongsByArtist(ctx, artist.ID)
	if err != nil {
		slog.Error("failed to list artist songs", "error", err, "artist_id", artist.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ArtistSongsResponse{
		Artist: artist.Name,
		Songs:  titles(songs),
	})
}
