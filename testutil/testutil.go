// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/setlist/auth"
	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/db"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/store"
)

// TestSessionSecret signs session tokens in tests
const TestSessionSecret = "test-session-secret"

// TestPostgresEnv names the variable that switches tests to PostgreSQL
const TestPostgresEnv = "TEST_DATABASE_URL"

// SetupTestDB creates a fresh test database with the full schema.
// SQLite in a temp dir by default; PostgreSQL when TEST_DATABASE_URL is set.
func SetupTestDB(t *testing.T) (*sql.DB, db.Dialect) {
	t.Helper()

	dialect, url := db.SQLite, filepath.Join(t.TempDir(), "test.db")
	if pgURL := os.Getenv(TestPostgresEnv); pgURL != "" {
		dialect, url = db.Postgres, pgURL
	}

	conn, err := db.Open(dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dialect == db.Postgres {
		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS playlist_song CASCADE;
			DROP TABLE IF EXISTS playlist CASCADE;
			DROP TABLE IF EXISTS song CASCADE;
			DROP TABLE IF EXISTS album_artist CASCADE;
			DROP TABLE IF EXISTS album CASCADE;
			DROP TABLE IF EXISTS artist CASCADE;
			DROP TABLE IF EXISTS app_user CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, dialect
}

// SetupTestStore wraps SetupTestDB in a Store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	conn, dialect := SetupTestDB(t)
	return store.New(conn, dialect, auth.NewID)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseSQLite,
		SessionSecret:  TestSessionSecret,
		Admin:          "admin@example.com",
		UploadDir:      t.TempDir(),
		MaxUpload:      "1 MB",
		MaxUploadBytes: 1 << 20,
		SessionTTL:     24 * time.Hour,
		RememberFor:    30 * 24 * time.Hour,
		Mail: cliparse.MailConfig{
			SubjectPrefix: "[Songs App]",
		},
	}
}

// CreateTestUser registers a user with the given password and returns it
func CreateTestUser(t *testing.T, s *store.Store, username, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.InsertUser(t.Context(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// SessionHeaders returns request headers authenticating as userID
func SessionHeaders(userID string) map[string]string {
	token := auth.IssueSessionToken(userID, time.Now().Add(time.Hour), TestSessionSecret)
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
