// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, each with a Validate method:

  - RegisterRequest: email, username, password, password2
  - LoginRequest: email, password, remember_me
  - SongRequest: title, artist, genre, album
  - CreatePlaylistRequest: name, songs

Validate returns a *ValidationError naming the offending field.

# Response Types

  - RegisterResponse, LoginResponse
  - IndexResponse, SongResponse, SongsResponse
  - ArtistsResponse, ArtistSongsResponse
  - AlbumsResponse, AlbumArtistsResponse
  - PlaylistsResponse, PlaylistResponse
  - UploadResponse, ImageResponse, ImagesResponse
  - ErrorResponse: error, message

# Domain Types

  - User: account with bcrypt password hash (never serialized)
  - Artist, Album, Song, Playlist
  - SongListing, ArtistSummary, AlbumArtistPair: report rows
*/
package models
