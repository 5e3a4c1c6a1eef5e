// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the setlist API.

# Handler Types

Each handler is a struct with its dependencies:

  - AuthHandler: Registration, login, logout
  - SongHandler: Song submission and song listings
  - CatalogHandler: Artist and album reports
  - PlaylistHandler: Playlist creation and retrieval
  - MediaHandler: Image upload and listing

	songHandler := handlers.NewSongHandler(store, resolver, dispatcher, cfg)

# Song Submission

	POST /songs → SubmitSong

A title already in the catalog is rejected with 409. Otherwise the song is
resolved together with its artist and album, and a "New Song" mail is
queued for the admin. A failure to queue is logged and does not fail the
request.

# Sessions

Handlers behind middleware.RequireUser read the caller with
middleware.UserID. Playlists belonging to another user answer 404.

# Error Responses

All errors use middleware.ErrorResponse:

	{"error": "Bad Request", "message": "This field is required."}

Login failures always answer "Invalid username or password.".
*/
package handlers
