// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the setlist API server.

Setlist keeps a shared catalog of songs, artists and albums, and lets
registered users build playlists from it. Submitting a song resolves its
artist and album by name, creating whatever is missing, and mails the
admin a short notice.

# Starting the Server

The server requires a session secret; everything else has defaults:

	SESSION_SECRET=change-me go run .

Or with flags and PostgreSQL:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret change-me

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Key for signing session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: setlist.db)
  - ADMIN (-admin): Recipient of new song mail
  - MAIL_*: SMTP relay; without MAIL_USERNAME mail is only logged
  - UPLOAD_DIR, MAX_UPLOAD: Image storage
  - LOG_LEVEL, LOG_FORMAT: Logging

Values may also come from a .env file or a TOML file given with -c.

# Architecture

  - handlers: HTTP request handlers (accounts, songs, catalog, playlists, media)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - resolver: Get-or-create for artists, albums, songs and playlists
  - store: SQL queries over PostgreSQL or SQLite
  - notify: Background mail dispatch
  - media: Uploaded image storage
  - models: Request/response and domain types
  - auth: Password hashing, IDs and session tokens
  - db: Connections and schema creation
  - logging: slog setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
