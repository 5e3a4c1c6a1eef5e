// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the setlist API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, dispatcher, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /register - Create user
	POST /login    - Start a session (cookie and bearer token)
	POST /logout   - End the session (requires session)
	GET  /secret   - Members-only message (requires session)

Songs and reports (public):

	GET  /                      - Song count
	POST /songs                 - Submit a song
	GET  /songs                 - Title, artist and genre of every song
	GET  /songs/genre/{genre}   - Songs in a genre
	GET  /artists               - Artists with song counts
	GET  /artists/{name}/songs  - Songs by an artist
	GET  /albums                - Albums with their artists
	GET  /albums/artists        - Album/artist pairs

Playlists (requires session):

	POST /playlists      - Create from song titles
	GET  /playlists      - Caller's playlists
	GET  /playlists/{id} - One playlist, owner only

Images:

	POST /upload         - Multipart upload, field "file"
	GET  /images         - All image URLs
	GET  /images/random  - One random image URL
	GET  /static/imgs/   - Image files
*/
package router
