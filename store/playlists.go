// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/setlist/models"
)

// FindPlaylistByNameAndUser returns the user's playlist with this name,
// songs loaded in playlist order.
func (q *Queries) FindPlaylistByNameAndUser(ctx context.Context, name, userID string) (*models.Playlist, error) {
	return q.scanPlaylist(ctx, q.queryRow(ctx, `
		SELECT id, name, user_id FROM playlist WHERE name = $1 AND user_id = $2
	`, name, userID))
}

// GetPlaylist returns the playlist by ID, songs loaded in playlist order.
func (q *Queries) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	return q.scanPlaylist(ctx, q.queryRow(ctx, `
		SELECT id, name, user_id FROM playlist WHERE id = $1
	`, id))
}

func (q *Queries) scanPlaylist(ctx context.Context, row *sql.Row) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.Name, &p.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	songs, err := q.PlaylistSongs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Songs = songs
	return &p, nil
}

// InsertPlaylist persists the playlist row and assigns its ID. Songs are
// attached separately with AddPlaylistSong.
func (q *Queries) InsertPlaylist(ctx context.Context, p *models.Playlist) error {
	id := q.newID()
	err := q.insertOnce(ctx, "playlist", `
		INSERT INTO playlist (id, name, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, user_id) DO NOTHING
	`, id, p.Name, p.UserID)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// AddPlaylistSong appends songID at position. A song already on the
// playlist keeps its first position.
func (q *Queries) AddPlaylistSong(ctx context.Context, playlistID, songID string, position int) error {
	_, err := q.exec(ctx, `
		INSERT INTO playlist_song (playlist_id, song_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id, song_id) DO NOTHING
	`, playlistID, songID, position)
	if err != nil {
		return fmt.Errorf("failed to add playlist song: %w", err)
	}
	return nil
}

// PlaylistSongs returns the playlist's songs in insertion order.
func (q *Queries) PlaylistSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	return q.listSongs(ctx, `
		SELECT s.id, s.title, s.genre, s.artist_id, s.album_id
		FROM playlist_song ps
		JOIN song s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position
	`, playlistID)
}

// ListPlaylistsByUser returns the user's playlists without their songs.
func (q *Queries) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	rows, err := q.query(ctx, `
		SELECT id, name, user_id FROM playlist WHERE user_id = $1 ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return playlists, nil
}
