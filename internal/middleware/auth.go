// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"iturinews/internal/auth"
	"iturinews/internal/models"
)

// CookieName is the name of the session cookie. Clients may also send
// the token as an Authorization bearer header; the header wins.
const CookieName = "in_session"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	principalKey contextKey = "principal"
	tokenKey     contextKey = "token"
)

// LoadPrincipal resolves the request's session token to a principal and
// stores it in the request context. It does NOT enforce authentication:
// requests without a valid token proceed as anonymous. Handlers that
// gate on the principal resolve it via PrincipalFromCtx and let the
// authorization service decide.
func LoadPrincipal(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := authService.Resolve(r.Context(), token)
			if err != nil {
				// Resolution infrastructure failed; treat as anonymous
				// rather than blocking public reads.
				slog.Error("principal resolution failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, token)
			if principal != nil {
				ctx = context.WithValue(ctx, principalKey, principal)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the opaque session token from the
// Authorization header or, failing that, the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(rest)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// PrincipalFromCtx extracts the resolved principal from the request
// context. Returns nil for anonymous requests.
func PrincipalFromCtx(ctx context.Context) *models.User {
	principal, _ := ctx.Value(principalKey).(*models.User)
	return principal
}

// TokenFromCtx extracts the raw session token, if any, from the request
// context.
func TokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
