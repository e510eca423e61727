package auth

import (
	"context"
	"net/http"
	"strings"

	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services/auth"
)

const (
	AUTH_TOKEN_PREFIX   = "Bearer "
	AUTH_TOKEN_MAX_LEN  = 1024
	SESSION_COOKIE_NAME = "session_token"
)

// ParseToken reads the session token from the Authorization header or,
// failing that, the session cookie set by the password reset endpoint.
func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header != "" {
		parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
		if len(parts) != 2 {
			return token, false
		}
		if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
			return token, false
		}
		return user.SessionToken(parts[1]), true
	}

	cookie, err := r.Cookie(SESSION_COOKIE_NAME)
	if err != nil || cookie.Value == "" || len(cookie.Value) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(cookie.Value), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			ctx := context.WithValue(r.Context(), auth.CONTEXT_AUTH_TOKEN_KEY, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
