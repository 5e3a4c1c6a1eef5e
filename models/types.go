// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Domain types

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// Song is identified by its title alone. ArtistID is nil until resolved;
// AlbumID is never set by song resolution.
type Song struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	ArtistID *string `json:"artist_id,omitempty"`
	AlbumID  *string `json:"album_id,omitempty"`
}

// Playlist is identified by (Name, UserID). Songs keep insertion order.
type Playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
	Songs  []Song `json:"songs"`
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
}

// Report rows

type SongListing struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
}

type ArtistSummary struct {
	Name      string `json:"name"`
	SongCount int    `json:"song_count"`
}

type AlbumArtistPair struct {
	Album  string `json:"album"`
	Artist string `json:"artist"`
}

// Request types

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type SongRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre"`
	Album  string `json:"album"`
}

// Songs holds song titles picked from the existing catalog
type CreatePlaylistRequest struct {
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

// Response types

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type IndexResponse struct {
	NumSongs int `json:"num_songs"`
}

type SongResponse struct {
	Song    Song   `json:"song"`
	Message string `json:"message,omitempty"`
}

type SongsResponse struct {
	Songs []SongListing `json:"songs"`
}

type ArtistsResponse struct {
	Artists []ArtistSummary `json:"artists"`
}

type ArtistSongsResponse struct {
	Artist string   `json:"artist"`
	Songs  []string `json:"songs"`
}

// GenreSongsResponse lists song titles for one genre
type GenreSongsResponse struct {
	Genre string   `json:"genre"`
	Songs []string `json:"songs"`
}

type AlbumsResponse struct {
	Albums []Album `json:"albums"`
}

type AlbumArtistsResponse struct {
	Pairs []AlbumArtistPair `json:"pairs"`
}

type PlaylistLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type PlaylistsResponse struct {
	Playlists []PlaylistLink `json:"playlists"`
}

type PlaylistResponse struct {
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type ImageResponse struct {
	URL string `json:"url"`
}

type ImagesResponse struct {
	URLs []string `json:"urls"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
