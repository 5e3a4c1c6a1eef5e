// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/testutil"
)

func TestCatalogReports(t *testing.T) {
	env := newTestEnv(t)
	songs := env.songs()
	catalog := NewCatalogHandler(env.store)
	ctx := t.Context()

	submitSong(t, songs, models.SongRequest{Title: "Yesterday", Artist: "Beatles", Genre: "Rock", Album: "Help"})
	if _, err := env.resolver.Album(ctx, "Split", []string{"A", "B"}); err != nil {
		t.Fatalf("Failed to resolve album: %v", err)
	}

	t.Run("artists", func(t *testing.T) {
		w := httptest.NewRecorder()
		catalog.ListArtists(w, testutil.MakeRequest("GET", "/artists", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ArtistsResponse
		testutil.AssertJSON(t, w, &resp)
		counts := map[string]int{}
		for _, a := range resp.Artists {
			counts[a.Name] = a.SongCount
		}
		if len(counts) != 3 || counts["Beatles"] != 1 || counts["A"] != 0 {
			t.Errorf("Unexpected artist summary %v", resp.Artists)
		}
	})

	t.Run("artist songs", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/artists/Beatles/songs", nil, nil)
		req.SetPathValue("name", "Beatles")
		w := httptest.NewRecorder()
		catalog.ArtistSongs(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ArtistSongsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Artist != "Beatles" || len(resp.Songs) != 1 || resp.Songs[0] != "Yesterday" {
			t.Errorf("Unexpected response %+v", resp)
		}
	})

	t.Run("unknown artist", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/artists/Nobody/songs", nil, nil)
		req.SetPathValue("name", "Nobody")
		w := httptest.NewRecorder()
		catalog.ArtistSongs(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("albums", func(t *testing.T) {
		w := httptest.NewRecorder()
		catalog.ListAlbums(w, testutil.MakeRequest("GET", "/albums", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.AlbumsResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Albums) != 2 {
			t.Fatalf("Expected 2 albums, got %d", len(resp.Albums))
		}
		if resp.Albums[1].Name != "Split" || len(resp.Albums[1].Artists) != 2 {
			t.Errorf("Unexpected album %+v", resp.Albums[1])
		}
	})

	t.Run("album artists", func(t *testing.T) {
		w := httptest.NewRecorder()
		catalog.AlbumArtists(w, testutil.MakeRequest("GET", "/albums/artists", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.AlbumArtistsResponse
		testutil.AssertJSON(t, w, &resp)
		expected := []models.AlbumArtistPair{
			{Album: "Help", Artist: "Beatles"},
			{Album: "Split", Artist: "A"},
			{Album: "Split", Artist: "B"},
		}
		if len(resp.Pairs) != len(expected) {
			t.Fatalf("Expected %d pairs, got %v", len(expected), resp.Pairs)
		}
		for i := range expected {
			if resp.Pairs[i] != expected[i] {
				t.Errorf("Pair %d: expected %+v, got %+v", i, expected[i], resp.Pairs[i])
			}
		}
	})
}
