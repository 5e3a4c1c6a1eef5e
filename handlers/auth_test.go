// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/setlist/auth"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
	"github.com/danielhkuo/setlist/testutil"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)
	testutil.CreateTestUser(t, env.store, "taken", "taken@example.com", "password1")

	testCases := []struct {
		name           string
		request        models.RegisterRequest
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid registration",
			request:        models.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "secret", Password2: "secret"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "passwords differ",
			request:        models.RegisterRequest{Email: "bob@example.com", Username: "bob", Password: "secret", Password2: "other"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Passwords must match",
		},
		{
			name:           "bad username",
			request:        models.RegisterRequest{Email: "bob@example.com", Username: "1bob", Password: "secret", Password2: "secret"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Usernames must have only letters, numbers, dots or underscores",
		},
		{
			name: "password longer than bcrypt accepts",
			request: models.RegisterRequest{
				Email: "dave@example.com", Username: "dave",
				Password: strings.Repeat("p", 80), Password2: strings.Repeat("p", 80),
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Password must be at most 72 bytes.",
		},
		{
			name:           "email taken",
			request:        models.RegisterRequest{Email: "taken@example.com", Username: "carol", Password: "secret", Password2: "secret"},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Email already registered.",
		},
		{
			name:           "username taken",
			request:        models.RegisterRequest{Email: "carol@example.com", Username: "taken", Password: "secret", Password2: "secret"},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Username already taken",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/register", tc.request, nil)
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tc.expectedMsg {
					t.Errorf("Expected message %q, got %q", tc.expectedMsg, resp.Message)
				}
			}
		})
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	req := testutil.MakeRequest("POST", "/register", models.RegisterRequest{
		Email: "alice@x.io", Username: "alice", Password: "p", Password2: "p",
	}, nil)
	w := httptest.NewRecorder()
	handler.Register(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var registered models.RegisterResponse
	testutil.AssertJSON(t, w, &registered)

	// Correct password
	req = testutil.MakeRequest("POST", "/login", models.LoginRequest{Email: "alice@x.io", Password: "p"}, nil)
	w = httptest.NewRecorder()
	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	if login.UserID != registered.UserID {
		t.Errorf("Expected user %s, got %s", registered.UserID, login.UserID)
	}
	userID, err := auth.ParseSessionToken(login.Token, env.cfg.SessionSecret, time.Now())
	if err != nil || userID != registered.UserID {
		t.Errorf("Expected token for %s, got %s (%v)", registered.UserID, userID, err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie {
		t.Fatalf("Expected session cookie, got %v", cookies)
	}
	if cookies[0].MaxAge != 0 {
		t.Errorf("Expected browser session cookie without remember_me, got MaxAge %d", cookies[0].MaxAge)
	}

	// Wrong password and unknown email read the same
	for _, creds := range []models.LoginRequest{
		{Email: "alice@x.io", Password: "q"},
		{Email: "nobody@x.io", Password: "p"},
	} {
		req = testutil.MakeRequest("POST", "/login", creds, nil)
		w = httptest.NewRecorder()
		handler.Login(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Invalid username or password." {
			t.Errorf("Expected generic credentials message, got %q", resp.Message)
		}
		if len(w.Result().Cookies()) != 0 {
			t.Error("Expected no cookie on failed login")
		}
	}
}

func TestLogin_RememberMe(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)
	testutil.CreateTestUser(t, env.store, "alice", "alice@example.com", "password1")

	req := testutil.MakeRequest("POST", "/login", models.LoginRequest{
		Email: "alice@example.com", Password: "password1", RememberMe: true,
	}, nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	cookie := w.Result().Cookies()[0]
	if cookie.MaxAge < int((29 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected a cookie remembered for about 30 days, got MaxAge %d", cookie.MaxAge)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	w := httptest.NewRecorder()
	handler.Logout(w, testutil.MakeRequest("POST", "/logout", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("Expected cookie deletion, got %v", cookies)
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	req := httptest.NewRequest("POST", "/login", nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestConflictMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)
	testutil.CreateTestUser(t, env.store, "taken", "taken@example.com", "password1")

	if got := handler.conflictMessage(t.Context(), "taken@example.com"); got != "Email already registered." {
		t.Errorf("Expected email conflict message, got %q", got)
	}
	if got := handler.conflictMessage(t.Context(), "fresh@example.com"); got != "Username already taken" {
		t.Errorf("Expected username conflict message, got %q", got)
	}
}

func TestSecret(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAuthHandler(env.store, env.cfg)

	w := httptest.NewRecorder()
	handler.Secret(w, testutil.MakeRequest("GET", "/secret", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp map[string]string
	testutil.AssertJSON(t, w, &resp)
	expected := "Only authenticated users can do this! Try to log in or contact the site admin."
	if resp["message"] != expected {
		t.Errorf("Expected %q, got %q", expected, resp["message"])
	}
}
