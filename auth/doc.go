// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens and ID generation.

# Passwords

Passwords are stored only as bcrypt hashes:

	hash, err := auth.HashPassword("secret1")
	err = auth.VerifyPassword(hash, candidate) // ErrMismatchedPassword on mismatch

The plaintext is never persisted or compared directly.

# Session Tokens

Session tokens carry the user ID and an expiry, signed with HMAC-SHA256:

	token := auth.IssueSessionToken(userID, time.Now().Add(24*time.Hour), secret)
	userID, err := auth.ParseSessionToken(token, secret, time.Now())

The signature is URL-safe base64 without padding. Validation needs no
server-side session table; rotating the secret invalidates every session.

# ID Generation

Random UUID strings for database records:

	id := auth.NewID()
*/
package auth
