// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken       = errors.New("invalid token format")
	ErrExpiredToken       = errors.New("session expired")
	ErrMismatchedPassword = errors.New("password does not match")
)

// NewID returns a random UUID string used as a primary key
func NewID() string {
	return uuid.NewString()
}

// HashPassword returns a salted one-way hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword re-hashes the candidate and compares it with the stored hash
func VerifyPassword(hash, candidate string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	return nil
}

// IssueSessionToken creates a signed token naming userID, valid until expires.
// Format: userID.expiryUnix.signature
func IssueSessionToken(userID string, expires time.Time, secret string) string {
	payload := userID + "." + strconv.FormatInt(expires.Unix(), 10)
	return payload + "." + sign(payload, secret)
}

// ParseSessionToken verifies the signature and expiry and returns the user ID
func ParseSessionToken(token, secret string, now time.Time) (string, error) {
	sigAt := strings.LastIndexByte(token, '.')
	if sigAt <= 0 {
		return "", ErrInvalidToken
	}
	payload, sig := token[:sigAt], token[sigAt+1:]

	if !hmac.Equal([]byte(sig), []byte(sign(payload, secret))) {
		return "", ErrInvalidToken
	}

	expAt := strings.LastIndexByte(payload, '.')
	if expAt <= 0 {
		return "", ErrInvalidToken
	}
	userID := payload[:expAt]
	expires, err := strconv.ParseInt(payload[expAt+1:], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}

	if !now.Before(time.Unix(expires, 0)) {
		return "", ErrExpiredToken
	}
	return userID, nil
}

// sign computes the HMAC-SHA256 of payload, URL-safe base64 without padding
func sign(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
