// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/setlist/auth"
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "setlist_session"

type contextKey struct{}

// UserID returns the authenticated user ID stored by RequireUser
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(contextKey{}).(string)
	return id, ok && id != ""
}

// WithUserID returns a copy of r carrying userID, as RequireUser does
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, userID))
}

// SessionToken reads the token from the Authorization header or the cookie
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireUser rejects requests without a valid session token
func RequireUser(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this page.")
				return
			}

			userID, err := auth.ParseSessionToken(token, secret, time.Now())
			if err != nil {
				ErrorResponse(w, http.StatusUnauthorized, "Please log in to access this page.")
				return
			}

			next(w, WithUserID(r, userID))
		}
	}
}

// SetSessionCookie stores token in an HttpOnly cookie. With persist the
// cookie outlives the browser session until expires; otherwise it is a
// session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, persist bool) {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if persist {
		c.Expires = expires
		c.MaxAge = int(time.Until(expires).Seconds())
	}
	http.SetCookie(w, c)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
