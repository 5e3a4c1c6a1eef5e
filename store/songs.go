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

const songColumns = `id, title, genre, artist_id, album_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(s scanner) (models.Song, error) {
	var (
		song     models.Song
		artistID sql.NullString
		albumID  sql.NullString
	)
	if err := s.Scan(&song.ID, &song.Title, &song.Genre, &artistID, &albumID); err != nil {
		return models.Song{}, err
	}
	song.ArtistID = nullableString(artistID)
	song.AlbumID = nullableString(albumID)
	return song, nil
}

// FindSongByTitle returns the song with exactly this title, or ErrNotFound.
func (q *Queries) FindSongByTitle(ctx context.Context, title string) (*models.Song, error) {
	song, err := scanSong(q.queryRow(ctx, `SELECT `+songColumns+` FROM song WHERE title = $1`, title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}
	return &song, nil
}

// InsertSong persists s and assigns its ID.
func (q *Queries) InsertSong(ctx context.Context, s *models.Song) error {
	id := q.newID()
	err := q.insertOnce(ctx, "song", `
		INSERT INTO song (id, title, genre, artist_id, album_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (title) DO NOTHING
	`, id, s.Title, s.Genre, nullString(s.ArtistID), nullString(s.AlbumID))
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (q *Queries) CountSongs(ctx context.Context) (int, error) {
	var n int
	if err := q.queryRow(ctx, `SELECT COUNT(*) FROM song`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// ListSongs returns title, artist name and genre for every song. Songs
// without an artist report an empty artist name.
func (q *Queries) ListSongs(ctx context.Context) ([]models.SongListing, error) {
	rows, err := q.query(ctx, `
		SELECT s.title, COALESCE(a.name, ''), s.genre
		FROM song s
		LEFT JOIN artist a ON a.id = s.artist_id
		ORDER BY s.title
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.SongListing{}
	for rows.Next() {
		var l models.SongListing
		if err := rows.Scan(&l.Title, &l.Artist, &l.Genre); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return songs, nil
}

func (q *Queries) ListSongsByGenre(ctx context.Context, genre string) ([]models.Song, error) {
	return q.listSongs(ctx, `SELECT `+songColumns+` FROM song WHERE genre = $1 ORDER BY title`, genre)
}

func (q *Queries) ListSongsByArtist(ctx context.Context, artistID string) ([]models.Song, error) {
	return q.listSongs(ctx, `SELECT `+songColumns+` FROM song WHERE artist_id = $1 ORDER BY title`, artistID)
}

func (q *Queries) listSongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return songs, nil
}
