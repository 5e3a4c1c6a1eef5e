// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resolver_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/resolver"
	"github.com/danielhkuo/setlist/store"
	"github.com/danielhkuo/setlist/testutil"
)

func setup(t *testing.T) (*resolver.Resolver, *store.Store) {
	t.Helper()
	s := testutil.SetupTestStore(t)
	return resolver.New(s), s
}

func TestArtist_Idempotent(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	first, err := r.Artist(ctx, "Beatles")
	require.NoError(t, err)
	second, err := r.Artist(ctx, "Beatles")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	artists, err := s.ListArtists(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestArtist_Concurrent(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			artist, err := r.Artist(ctx, "Concurrent")
			errs[i] = err
			if err == nil {
				ids[i] = artist.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	artists, err := s.ListArtists(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestAlbum_LinksArtists(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	album, err := r.Album(ctx, "Split", []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, album.Artists, 2)
	assert.Equal(t, "A", album.Artists[0].Name)
	assert.Equal(t, "B", album.Artists[1].Name)

	again, err := r.Album(ctx, "Split", []string{"C"})
	require.NoError(t, err)
	assert.Equal(t, album.ID, again.ID)
	assert.Len(t, again.Artists, 2, "artist list ignored for an existing album")

	_, err = s.FindArtistByName(ctx, "C")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAlbum_ReusesExistingArtist(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	artist, err := r.Artist(ctx, "A")
	require.NoError(t, err)

	album, err := r.Album(ctx, "Solo", []string{"A"})
	require.NoError(t, err)
	require.Len(t, album.Artists, 1)
	assert.Equal(t, artist.ID, album.Artists[0].ID)

	artists, err := s.ListArtists(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1)
}

func TestSong_CreatesArtistAndAlbum(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	song, err := r.Song(ctx, "Yesterday", "Beatles", "Help", "Rock")
	require.NoError(t, err)
	assert.Equal(t, "Yesterday", song.Title)
	assert.Equal(t, "Rock", song.Genre)
	assert.Nil(t, song.AlbumID, "new songs carry no album reference")

	artist, err := s.FindArtistByName(ctx, "Beatles")
	require.NoError(t, err)
	require.NotNil(t, song.ArtistID)
	assert.Equal(t, artist.ID, *song.ArtistID)

	album, err := s.FindAlbumByName(ctx, "Help")
	require.NoError(t, err)
	require.Len(t, album.Artists, 1)
	assert.Equal(t, artist.ID, album.Artists[0].ID)

	artists, err := s.ListArtists(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1)
	albums, err := s.ListAlbums(ctx)
	require.NoError(t, err)
	assert.Len(t, albums, 1)
}

func TestSong_TitleIsIdentity(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	original, err := r.Song(ctx, "Yesterday", "Beatles", "Help", "Rock")
	require.NoError(t, err)

	again, err := r.Song(ctx, "Yesterday", "OtherArtist", "Other", "Pop")
	require.NoError(t, err)

	assert.Equal(t, original.ID, again.ID)
	assert.Equal(t, "Rock", again.Genre)
	assert.Equal(t, *original.ArtistID, *again.ArtistID)

	_, err = s.FindArtistByName(ctx, "OtherArtist")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.FindAlbumByName(ctx, "Other")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPlaylist_FirstSongListWins(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, s, "alice", "alice@example.com", "password1")

	one, err := r.Song(ctx, "One", "X", "Y", "Rock")
	require.NoError(t, err)
	two, err := r.Song(ctx, "Two", "X", "Y", "Rock")
	require.NoError(t, err)
	three, err := r.Song(ctx, "Three", "X", "Y", "Rock")
	require.NoError(t, err)

	playlist, err := r.Playlist(ctx, "Mix", []models.Song{*two, *one}, user.ID)
	require.NoError(t, err)
	require.Len(t, playlist.Songs, 2)
	assert.Equal(t, "Two", playlist.Songs[0].Title)
	assert.Equal(t, "One", playlist.Songs[1].Title)

	again, err := r.Playlist(ctx, "Mix", []models.Song{*three}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, playlist.ID, again.ID)
	require.Len(t, again.Songs, 2)
	assert.Equal(t, "Two", again.Songs[0].Title)
}

func TestPlaylist_ScopedPerUser(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, s, "alice", "alice@example.com", "password1")
	bob := testutil.CreateTestUser(t, s, "bob", "bob@example.com", "password1")

	a, err := r.Playlist(ctx, "Mix", nil, alice.ID)
	require.NoError(t, err)
	b, err := r.Playlist(ctx, "Mix", nil, bob.ID)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.Songs)
}
