// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/setlist/models"
)

// captureLogs points the default slog logger at a buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	testCases := []struct {
		name     string
		handler  http.HandlerFunc
		expected int
	}{
		{
			name:     "implicit 200",
			handler:  func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
			expected: http.StatusOK,
		},
		{
			name: "explicit conflict",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusConflict, "You've already saved a song with that title!")
			},
			expected: http.StatusConflict,
		},
		{
			name: "unauthorized from session check",
			handler: RequireUser("secret")(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not run without a session")
			}),
			expected: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest("POST", "/songs", nil)
			w := httptest.NewRecorder()
			WithLogging(tc.handler)(w, req)

			if w.Code != tc.expected {
				t.Fatalf("Expected status %d on the wire, got %d", tc.expected, w.Code)
			}

			var completed map[string]any
			for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
				var entry map[string]any
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Fatalf("Unparseable log line %q: %v", line, err)
				}
				if entry["msg"] == "request completed" {
					completed = entry
				}
			}
			if completed == nil {
				t.Fatalf("No completion log in %s", logs.String())
			}
			if completed["status"] != float64(tc.expected) {
				t.Errorf("Expected logged status %d, got %v", tc.expected, completed["status"])
			}
			if completed["path"] != "/songs" {
				t.Errorf("Expected logged path /songs, got %v", completed["path"])
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Artist not found")

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if resp.Error != "Not Found" || resp.Message != "Artist not found" {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("song request", func(t *testing.T) {
		body := `{"title":"Yesterday","artist":"Beatles","genre":"Rock","album":"Help","extra":1}`
		req := httptest.NewRequest("POST", "/songs", strings.NewReader(body))

		var song models.SongRequest
		if err := ParseJSONBody(req, &song); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		expected := models.SongRequest{Title: "Yesterday", Artist: "Beatles", Genre: "Rock", Album: "Help"}
		if song != expected {
			t.Errorf("Expected %+v, got %+v", expected, song)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/songs", strings.NewReader(`{"title":`))
		var song models.SongRequest
		if err := ParseJSONBody(req, &song); err == nil {
			t.Error("Expected error for truncated JSON")
		}
	})
}

func TestCORS(t *testing.T) {
	var called bool
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight stops before the handler", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("OPTIONS", "/playlists", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if called {
			t.Error("Preflight should not reach the handler")
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Expected origin echoed, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Expected credentials allowed for the session cookie, got %q", got)
		}
	})

	t.Run("only the methods the API serves", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/songs", nil))

		methods := strings.Split(w.Header().Get("Access-Control-Allow-Methods"), ", ")
		allowed := map[string]bool{}
		for _, m := range methods {
			allowed[m] = true
		}
		for _, m := range []string{"GET", "POST", "OPTIONS"} {
			if !allowed[m] {
				t.Errorf("Expected %s to be allowed", m)
			}
		}
		for _, m := range []string{"PUT", "PATCH", "DELETE"} {
			if allowed[m] {
				t.Errorf("Expected %s not to be allowed", m)
			}
		}
	})

	t.Run("bearer tokens may cross origins", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/playlists", nil))

		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
			t.Errorf("Expected Authorization in allowed headers, got %q", w.Header().Get("Access-Control-Allow-Headers"))
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard without Origin, got %q", got)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "10.0.0.2:4000", "203.0.113.1"},
		{"real IP header", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:4000", "198.51.100.7"},
		{"remote address port stripped", nil, "192.0.2.9:51234", "192.0.2.9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
