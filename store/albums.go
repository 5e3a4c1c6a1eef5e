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

// FindAlbumByName returns the album with exactly this name, artists loaded.
func (q *Queries) FindAlbumByName(ctx context.Context, name string) (*models.Album, error) {
	return q.scanAlbum(ctx, q.queryRow(ctx, `SELECT id, name FROM album WHERE name = $1`, name))
}

// GetAlbum returns the album by ID, artists loaded.
func (q *Queries) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	return q.scanAlbum(ctx, q.queryRow(ctx, `SELECT id, name FROM album WHERE id = $1`, id))
}

func (q *Queries) scanAlbum(ctx context.Context, row *sql.Row) (*models.Album, error) {
	var al models.Album
	err := row.Scan(&al.ID, &al.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query album: %w", err)
	}

	artists, err := q.AlbumArtists(ctx, al.ID)
	if err != nil {
		return nil, err
	}
	al.Artists = artists
	return &al, nil
}

// InsertAlbum persists the album row and assigns its ID. Artist links are
// written separately with LinkAlbumArtist.
func (q *Queries) InsertAlbum(ctx context.Context, al *models.Album) error {
	id := q.newID()
	err := q.insertOnce(ctx, "album", `
		INSERT INTO album (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`, id, al.Name)
	if err != nil {
		return err
	}
	al.ID = id
	return nil
}

// LinkAlbumArtist adds artistID to the album's artist set. Linking the same
// pair twice is a no-op.
func (q *Queries) LinkAlbumArtist(ctx context.Context, albumID, artistID string) error {
	_, err := q.exec(ctx, `
		INSERT INTO album_artist (album_id, artist_id)
		VALUES ($1, $2)
		ON CONFLICT (album_id, artist_id) DO NOTHING
	`, albumID, artistID)
	if err != nil {
		return fmt.Errorf("failed to link album artist: %w", err)
	}
	return nil
}

// AlbumArtists returns the artists linked to an album, ordered by name.
func (q *Queries) AlbumArtists(ctx context.Context, albumID string) ([]models.Artist, error) {
	rows, err := q.query(ctx, `
		SELECT ar.id, ar.name
		FROM album_artist aa
		JOIN artist ar ON ar.id = aa.artist_id
		WHERE aa.album_id = $1
		ORDER BY ar.name
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query album artists: %w", err)
	}
	defer rows.Close()

	artists := []models.Artist{}
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return artists, nil
}

// ListAlbums returns every album with its artists, ordered by album name.
func (q *Queries) ListAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := q.query(ctx, `
		SELECT al.id, al.name, ar.id, ar.name
		FROM album al
		LEFT JOIN album_artist aa ON aa.album_id = al.id
		LEFT JOIN artist ar ON ar.id = aa.artist_id
		ORDER BY al.name, ar.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var (
			albumID, albumName   string
			artistID, artistName sql.NullString
		)
		if err := rows.Scan(&albumID, &albumName, &artistID, &artistName); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}

		if n := len(albums); n == 0 || albums[n-1].ID != albumID {
			albums = append(albums, models.Album{ID: albumID, Name: albumName, Artists: []models.Artist{}})
		}
		if artistID.Valid {
			last := &albums[len(albums)-1]
			last.Artists = append(last.Artists, models.Artist{ID: artistID.String, Name: artistName.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return albums, nil
}

// ListAlbumArtistPairs flattens the album/artist relation into one row per link.
func (q *Queries) ListAlbumArtistPairs(ctx context.Context) ([]models.AlbumArtistPair, error) {
	rows, err := q.query(ctx, `
		SELECT al.name, ar.name
		FROM album_artist aa
		JOIN album al ON al.id = aa.album_id
		JOIN artist ar ON ar.id = aa.artist_id
		ORDER BY al.name, ar.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query album artists: %w", err)
	}
	defer rows.Close()

	pairs := []models.AlbumArtistPair{}
	for rows.Next() {
		var p models.AlbumArtistPair
		if err := rows.Scan(&p.Album, &p.Artist); err != nil {
			return nil, fmt.Errorf("failed to scan album artist: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return pairs, nil
}
