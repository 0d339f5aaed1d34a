// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth exchanges credentials for principals and resolves session
// tokens back to principals. Verification of external credentials is
// delegated to a Verifier collaborator; this package owns only the local
// mapping from verified identity to account and session.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"iturinews/internal/apperr"
	"iturinews/internal/models"
	"iturinews/internal/session"
	"iturinews/internal/storage"
)

// Identity is what an external identity provider asserts about a
// credential after verifying it.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
	AvatarURL  string
}

// Verifier validates an external credential and returns the identity it
// asserts. Implementations talk to the actual identity provider; the
// returned error is surfaced as an AuthenticationError.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// Service implements sign-in, sign-out, and principal resolution.
type Service struct {
	store    storage.Store
	sessions *session.Store
	verifier Verifier
}

// New creates an auth service. verifier may be nil, in which case only
// password sign-in is available.
func New(store storage.Store, sessions *session.Store, verifier Verifier) *Service {
	return &Service{store: store, sessions: sessions, verifier: verifier}
}

// SignIn exchanges an external credential for a principal and a session
// token. The credential must verify and map to a known user — either by
// external-identity key or, failing that, by the asserted email. Unknown
// identities are rejected; accounts are provisioned out of band.
func (s *Service) SignIn(ctx context.Context, credential string) (*models.User, string, error) {
	if s.verifier == nil {
		return nil, "", apperr.Authentication("external sign-in is not configured")
	}

	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, "", apperr.Authentication("credential verification failed: %v", err)
	}

	user, err := s.store.FindUserByExternalID(ctx, identity.ExternalID)
	if apperr.IsNotFound(err) && identity.Email != "" {
		user, err = s.store.FindUserByEmail(ctx, identity.Email)
	}
	if apperr.IsNotFound(err) {
		return nil, "", apperr.Authentication("no account for this identity")
	}
	if err != nil {
		return nil, "", fmt.Errorf("sign in lookup: %w", err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign in session: %w", err)
	}

	slog.Info("user signed in", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// SignInWithPassword authenticates a locally-provisioned account, such
// as the seeded superadmin, against its bcrypt hash.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if apperr.IsNotFound(err) {
		return nil, "", apperr.Authentication("invalid email or password")
	}
	if err != nil {
		return nil, "", fmt.Errorf("password sign in lookup: %w", err)
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperr.Authentication("invalid email or password")
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("password sign in session: %w", err)
	}

	slog.Info("user signed in", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// Resolve maps a session token back to its principal. An unknown or
// expired token resolves to (nil, nil) — anonymous, not an error. The
// principal is re-read from the repository so stale session data can
// never outrank stored state.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	data, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	user, err := s.store.FindUserByID(ctx, data.UserID)
	if apperr.IsNotFound(err) {
		// Account deleted since the session was issued.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return user, nil
}

// SignOut invalidates a session token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
