// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/handlers"
	"github.com/danielhkuo/setlist/media"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/resolver"
	"github.com/danielhkuo/setlist/store"
)

func NewRouter(s *store.Store, notifier handlers.Notifier, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	res := resolver.New(s)
	library := media.NewLibrary(cfg.UploadDir)
	authHandler := handlers.NewAuthHandler(s, cfg)
	songHandler := handlers.NewSongHandler(s, res, notifier, cfg)
	catalogHandler := handlers.NewCatalogHandler(s)
	playlistHandler := handlers.NewPlaylistHandler(s, res)
	mediaHandler := handlers.NewMediaHandler(library, cfg)

	requireUser := middleware.RequireUser(cfg.SessionSecret)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(requireUser(authHandler.Logout)))
	mux.HandleFunc("GET /secret", middleware.WithLogging(requireUser(authHandler.Secret)))

	// Songs
	mux.HandleFunc("GET /{$}", middleware.WithLogging(songHandler.Index))
	mux.HandleFunc("POST /songs", middleware.WithLogging(songHandler.SubmitSong))
	mux.HandleFunc("GET /songs", middleware.WithLogging(songHandler.ListSongs))
	mux.HandleFunc("GET /songs/genre/{genre}", middleware.WithLogging(songHandler.SongsByGenre))

	// Artist and album reports
	mux.HandleFunc("GET /artists", middleware.WithLogging(catalogHandler.ListArtists))
	mux.HandleFunc("GET /artists/{name}/songs", middleware.WithLogging(catalogHandler.ArtistSongs))
	mux.HandleFunc("GET /albums", middleware.WithLogging(catalogHandler.ListAlbums))
	mux.HandleFunc("GET /albums/artists", middleware.WithLogging(catalogHandler.AlbumArtists))

	// Playlists (logged in users only)
	mux.HandleFunc("POST /playlists", middleware.WithLogging(requireUser(playlistHandler.CreatePlaylist)))
	mux.HandleFunc("GET /playlists", middleware.WithLogging(requireUser(playlistHandler.ListPlaylists)))
	mux.HandleFunc("GET /playlists/{id}", middleware.WithLogging(requireUser(playlistHandler.GetPlaylist)))

	// Images
	mux.HandleFunc("POST /upload", middleware.WithLogging(mediaHandler.Upload))
	mux.HandleFunc("GET /images", middleware.WithLogging(mediaHandler.AllImages))
	mux.HandleFunc("GET /images/random", middleware.WithLogging(mediaHandler.RandomImage))
	mux.Handle("GET "+handlers.StaticPrefix,
		http.StripPrefix(handlers.StaticPrefix, http.FileServer(http.Dir(library.Dir()))))

	return mux
}
