// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenFromRequest(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		if got := TokenFromRequest(req); got != "abc123" {
			t.Errorf("got %q, want %q", got, "abc123")
		}
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		if got := TokenFromRequest(req); got != "cookie-token" {
			t.Errorf("got %q, want %q", got, "cookie-token")
		}
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		if got := TokenFromRequest(req); got != "header-token" {
			t.Errorf("got %q, want %q", got, "header-token")
		}
	})

	t.Run("non-bearer header falls back to cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})

		if got := TokenFromRequest(req); got != "cookie-token" {
			t.Errorf("got %q, want %q", got, "cookie-token")
		}
	})

	t.Run("nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		if got := TokenFromRequest(req); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestPrincipalFromCtx(t *testing.T) {
	if got := PrincipalFromCtx(context.Background()); got != nil {
		t.Errorf("empty context: got %v, want nil", got)
	}
	if got := TokenFromCtx(context.Background()); got != "" {
		t.Errorf("empty context: got %q, want empty token", got)
	}
}
