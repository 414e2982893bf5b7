package session

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the opaque session token.
const CookieName = "sessionId"

// maxAge is seven days, in seconds.
const maxAge = 7 * 24 * 60 * 60

type contextKey string

const tokenKey = contextKey("sessionToken")

// FromRequest extracts the session token from the request cookie, if present.
func FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Issue mints a fresh opaque token and sets it on the response as a cookie
// scoped to the whole site. Cookie attributes match the source system
// (Path=/ and Max-Age only); the token is never recorded server-side, its
// presence alone is the proof of identity for that session's meals.
func Issue(w http.ResponseWriter) string {
	token := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  token,
		Path:   "/",
		MaxAge: maxAge,
	})
	return token
}

// FromContext returns the token stored by the Require middleware.
func FromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// Require gates meal read endpoints: requests without a session cookie are
// rejected before the handler body runs. The token is not checked against any
// server-side record.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := FromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized."})
			return
		}
		ctx := context.WithValue(r.Context(), tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
