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

// InsertUser persists u and assigns its ID. A taken username or email
// yields ErrConflict.
func (q *Queries) InsertUser(ctx context.Context, u *models.User) error {
	id := q.newID()
	err := q.insertOnce(ctx, "user", `
		INSERT INTO app_user (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, id, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (q *Queries) GetUser(ctx context.Context, id string) (*models.User, error) {
	return scanUser(q.queryRow(ctx, `SELECT id, username, email, password_hash FROM app_user WHERE id = $1`, id))
}

func (q *Queries) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(q.queryRow(ctx, `SELECT id, username, email, password_hash FROM app_user WHERE email = $1`, email))
}

func (q *Queries) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(q.queryRow(ctx, `SELECT id, username, email, password_hash FROM app_user WHERE username = $1`, username))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}
