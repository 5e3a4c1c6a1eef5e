// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/store"
)

// maxAttempts bounds how often a lookup is retried after losing an insert
// race to a concurrent writer.
const maxAttempts = 3

// Resolver returns existing entities by natural key or creates them.
// Each exported call is one transaction, nested resolutions included.
type Resolver struct {
	store *store.Store
}

func New(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// Artist returns the artist named name, creating it when absent.
func (r *Resolver) Artist(ctx context.Context, name string) (*models.Artist, error) {
	var artist *models.Artist
	err := r.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		artist, err = resolveArtist(ctx, q, name)
		return err
	})
	return artist, err
}

// Album returns the album named name. When absent it is created and linked
// to each named artist, resolving those as needed. artistNames is ignored
// when the album already exists.
func (r *Resolver) Album(ctx context.Context, name string, artistNames []string) (*models.Album, error) {
	var album *models.Album
	err := r.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		album, err = resolveAlbum(ctx, q, name, artistNames)
		return err
	})
	return album, err
}

// Song returns the song titled title; the title is its only identity. When
// absent the artist and album are resolved and a song linked to the artist
// is created. The album is resolved for its side effect only: the new song
// carries no album reference.
func (r *Resolver) Song(ctx context.Context, title, artistName, albumName, genre string) (*models.Song, error) {
	var song *models.Song
	err := r.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		song, err = resolveSong(ctx, q, title, artistName, albumName, genre)
		return err
	})
	return song, err
}

// Playlist returns the user's playlist named name. When absent it is created
// with songs attached in order; songs is ignored when it already exists.
func (r *Resolver) Playlist(ctx context.Context, name string, songs []models.Song, userID string) (*models.Playlist, error) {
	var playlist *models.Playlist
	err := r.store.InTx(ctx, func(q *store.Queries) error {
		var err error
		playlist, err = resolvePlaylist(ctx, q, name, songs, userID)
		return err
	})
	return playlist, err
}

// getOrCreate runs find, and on a miss runs create. A create that loses to a
// concurrent insert of the same key falls back to find again.
func getOrCreate[T any](find func() (*T, error), create func() (*T, error)) (*T, error) {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var found *T
		found, err = find()
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		var created *T
		created, err = create()
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", maxAttempts, err)
}

func resolveArtist(ctx context.Context, q *store.Queries, name string) (*models.Artist, error) {
	return getOrCreate(
		func() (*models.Artist, error) { return q.FindArtistByName(ctx, name) },
		func() (*models.Artist, error) {
			artist := &models.Artist{Name: name}
			if err := q.InsertArtist(ctx, artist); err != nil {
				return nil, err
			}
			return artist, nil
		},
	)
}

func resolveAlbum(ctx context.Context, q *store.Queries, name string, artistNames []string) (*models.Album, error) {
	return getOrCreate(
		func() (*models.Album, error) { return q.FindAlbumByName(ctx, name) },
		func() (*models.Album, error) {
			album := &models.Album{Name: name}
			if err := q.InsertAlbum(ctx, album); err != nil {
				return nil, err
			}

			for _, artistName := range artistNames {
				artist, err := resolveArtist(ctx, q, artistName)
				if err != nil {
					return nil, err
				}
				if err := q.LinkAlbumArtist(ctx, album.ID, artist.ID); err != nil {
					return nil, err
				}
			}

			// Reload so the artist set reflects the stored links
			return q.GetAlbum(ctx, album.ID)
		},
	)
}

func resolveSong(ctx context.Context, q *store.Queries, title, artistName, albumName, genre string) (*models.Song, error) {
	return getOrCreate(
		func() (*models.Song, error) { return q.FindSongByTitle(ctx, title) },
		func() (*models.Song, error) {
			artist, err := resolveArtist(ctx, q, artistName)
			if err != nil {
				return nil, err
			}
			if _, err := resolveAlbum(ctx, q, albumName, []string{artistName}); err != nil {
				return nil, err
			}

			song := &models.Song{Title: title, Genre: genre, ArtistID: &artist.ID}
			if err := q.InsertSong(ctx, song); err != nil {
				return nil, err
			}
			return song, nil
		},
	)
}

func resolvePlaylist(ctx context.Context, q *store.Queries, name string, songs []models.Song, userID string) (*models.Playlist, error) {
	return getOrCreate(
		func() (*models.Playlist, error) { return q.FindPlaylistByNameAndUser(ctx, name, userID) },
		func() (*models.Playlist, error) {
			playlist := &models.Playlist{Name: name, UserID: userID}
			if err := q.InsertPlaylist(ctx, playlist); err != nil {
				return nil, err
			}

			for i, song := range songs {
				if err := q.AddPlaylistSong(ctx, playlist.ID, song.ID, i); err != nil {
					return nil, err
				}
			}

			return q.GetPlaylist(ctx, playlist.ID)
		},
	)
}
