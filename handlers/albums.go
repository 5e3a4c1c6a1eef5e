// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
)

// ListAlbums handles GET /albums
func (h *CatalogHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.store.ListAlbums(r.Context())
	if err != nil {
		slog.Error("failed to list albums", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AlbumsResponse{Albums: albums})
}

// AlbumArtists handles GET /albums/artists
func (h *CatalogHandler) AlbumArtists(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.store.ListAlbumArtistPairs(r.Context())
	if err != nil {
		slog.Error("failed to list album artists", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AlbumArtistsResponse{Pairs: pairs})
}
