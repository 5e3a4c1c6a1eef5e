// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid for both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,

	// Artists
	`CREATE TABLE IF NOT EXISTS artist (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,

	// Albums
	`CREATE TABLE IF NOT EXISTS album (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
)`,

	`CREATE TABLE IF NOT EXISTS album_artist (
    album_id TEXT NOT NULL REFERENCES album(id) ON DELETE CASCADE,
    artist_id TEXT NOT NULL REFERENCES artist(id) ON DELETE CASCADE,
    PRIMARY KEY (album_id, artist_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_album_artist_artist_id ON album_artist(artist_id)`,

	// Songs
	`CREATE TABLE IF NOT EXISTS song (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL UNIQUE,
    genre TEXT NOT NULL,
    artist_id TEXT REFERENCES artist(id),
    album_id TEXT REFERENCES album(id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_song_artist_id ON song(artist_id)`,
	`CREATE INDEX IF NOT EXISTS idx_song_genre ON song(genre)`,

	// Playlists
	`CREATE TABLE IF NOT EXISTS playlist (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    UNIQUE (name, user_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_playlist_user_id ON playlist(user_id)`,

	`CREATE TABLE IF NOT EXISTS playlist_song (
    playlist_id TEXT NOT NULL REFERENCES playlist(id) ON DELETE CASCADE,
    song_id TEXT NOT NULL REFERENCES song(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    PRIMARY KEY (playlist_id, song_id)
)`,
}
