// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/resolver"
	"github.com/danielhkuo/setlist/store"
)

// Notifier queues templated mail. Implemented by *notify.Dispatcher.
type Notifier interface {
	SendEmail(to, subject, template string, data any) error
}

type SongHandler struct {
	store    *store.Store
	resolver *resolver.Resolver
	notifier Notifier
	cfg      cliparse.Config
}

func NewSongHandler(s *store.Store, res *resolver.Resolver, n Notifier, cfg cliparse.Config) *SongHandler {
	return &SongHandler{store: s, resolver: res, notifier: n, cfg: cfg}
}

// Index handles GET /
func (h *SongHandler) Index(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.CountSongs(r.Context())
	if err != nil {
		slog.Error("failed to count songs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IndexResponse{NumSongs: n})
}

// SubmitSong handles POST /songs
func (h *SongHandler) SubmitSong(w http.ResponseWriter, r *http.Request) {
	var req models.SongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		validationError(w, err)
		return
	}

	ctx := r.Context()

	_, err := h.store.FindSongByTitle(ctx, req.Title)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "You've already saved a song with that title!")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to query song", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	song, err := h.resolver.Song(ctx, req.Title, req.Artist, req.Album, req.Genre)
	if err != nil {
		slog.Error("failed to resolve song", "error", err, "title", req.Title)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save song")
		return
	}

	slog.Info("song saved", "song_id", song.ID, "title", song.Title)

	// Best effort: the song is saved whether or not the mail goes out
	err = h.notifier.SendEmail(h.cfg.Admin, "New Song", "new_song", map[string]string{
		"Song":   song.Title,
		"Artist": req.Artist,
		"Genre":  song.Genre,
	})
	if err != nil {
		slog.Warn("failed to queue new song notification", "error", err, "song_id", song.ID)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SongResponse{
		Song:    *song,
		Message: "Song saved.",
	})
}

// ListSongs handles GET /songs
func (h *SongHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.store.ListSongs(r.Context())
	if err != nil {
		slog.Error("failed to list songs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SongsResponse{Songs: songs})
}

// SongsByGenre handles GET /songs/genre/{genre}
func (h *SongHandler) SongsByGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	if genre == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "genre is required")
		return
	}

	songs, err := h.store.ListSongsByGenre(r.Context(), genre)
	if err != nil {
		slog.Error("failed to list songs by genre", "error", err, "genre", genre)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GenreSongsResponse{
		Genre: genre,
		Songs: titles(songs),
	})
}

func titles(songs []models.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.Title)
	}
	return out
}
