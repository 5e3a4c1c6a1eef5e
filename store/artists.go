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

// FindArtistByName returns the artist with exactly this name, or ErrNotFound.
func (q *Queries) FindArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	var a models.Artist
	err := q.queryRow(ctx, `SELECT id, name FROM artist WHERE name = $1`, name).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}
	return &a, nil
}

// InsertArtist persists a and assigns its ID.
func (q *Queries) InsertArtist(ctx context.Context, a *models.Artist) error {
	id := q.newID()
	err := q.insertOnce(ctx, "artist", `
		INSERT INTO artist (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`, id, a.Name)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// ListArtists returns every artist with the number of songs attributed to it.
func (q *Queries) ListArtists(ctx context.Context) ([]models.ArtistSummary, error) {
	rows, err := q.query(ctx, `
		SELECT a.name, COUNT(s.id)
		FROM artist a
		LEFT JOIN song s ON s.artist_id = a.id
		GROUP BY a.id, a.name
		ORDER BY a.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	artists := []models.ArtistSummary{}
	for rows.Next() {
		var s models.ArtistSummary
		if err := rows.Scan(&s.Name, &s.SongCount); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return artists, nil
}
