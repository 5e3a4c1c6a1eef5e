// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"net/mail"
	"regexp"
	"strings"
)

// ValidationError reports a rejected form field with a message fit for users.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

const maxFieldLen = 64

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// Validate checks the registration form. Uniqueness of email and username
// is checked against the store by the caller.
func (r *RegisterRequest) Validate() error {
	if err := requireLength("email", r.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Field: "email", Message: "Invalid email address."}
	}

	if err := requireLength("username", r.Username); err != nil {
		return err
	}
	if !usernamePattern.MatchString(r.Username) {
		return &ValidationError{Field: "username", Message: "Usernames must have only letters, numbers, dots or underscores"}
	}

	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "This field is required."}
	}
	if r.Password2 == "" {
		return &ValidationError{Field: "password2", Message: "This field is required."}
	}
	if r.Password != r.Password2 {
		return &ValidationError{Field: "password", Message: "Passwords must match"}
	}
	if len(r.Password) > MaxPasswordBytes {
		return &ValidationError{Field: "password", Message: "Password must be at most 72 bytes."}
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if err := requireLength("email", r.Email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Field: "email", Message: "Invalid email address."}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "This field is required."}
	}
	return nil
}

func (r *SongRequest) Validate() error {
	fields := []struct{ name, value string }{
		{"title", r.Title},
		{"artist", r.Artist},
		{"genre", r.Genre},
		{"album", r.Album},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Message: "This field is required."}
		}
	}
	return nil
}

func (r *CreatePlaylistRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "This field is required."}
	}
	return nil
}

func requireLength(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "This field is required."}
	}
	if len(value) > maxFieldLen {
		return &ValidationError{Field: field, Message: "Field must be between 1 and 64 characters long."}
	}
	return nil
}
