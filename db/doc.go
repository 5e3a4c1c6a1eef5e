// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connections

Open supports PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):

	conn, err := db.Open(db.SQLite, "setlist.db")

SQLite connections are limited to a single open connection with WAL,
foreign keys and a busy timeout enabled.

Queries are written with $N placeholders; Rebind rewrites them for SQLite.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user: registered users, username and email unique
  - artist: name unique
  - album: name unique
  - album_artist: album/artist links
  - song: title unique, optional artist and album references
  - playlist: (name, user_id) unique
  - playlist_song: ordered playlist entries

# Relationships

	album *──* artist (via album_artist)
	artist 1──* song
	app_user 1──* playlist
	playlist *──* song (via playlist_song)
*/
package db
