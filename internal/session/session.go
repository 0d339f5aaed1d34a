// Package session maps opaque tokens to user identities. Tokens are
// random and carry no claims of their own — everything a token stands for
// lives server-side in the key-value backend (Valkey in production, an
// in-process map in tests) and expires with its TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in the KV to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random token (32 bytes = 64 hex chars).
	idLength = 32
)

// Data is the payload stored per token. Only the user id is trusted;
// the principal itself is re-resolved from the repository on every use.
type Data struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages the session lifecycle over a KV backend.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a session store with the default TTL.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, ttl: DefaultTTL}
}

// NewStoreTTL creates a session store with an explicit TTL.
func NewStoreTTL(kv KV, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Create stores a new session for the given user and returns its token.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	payload, err := json.Marshal(Data{UserID: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.kv.Set(ctx, keyPrefix+token, string(payload), s.ttl); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}
	return token, nil
}

// Resolve returns the session data for a token. An unknown or expired
// token yields (nil, nil): the caller treats it as anonymous, never as a
// failure.
func (s *Store) Resolve(ctx context.Context, token string) (*Data, error) {
	if token == "" {
		return nil, nil
	}

	payload, ok, err := s.kv.Get(ctx, keyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var data Data
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// Destroy invalidates a token. Destroying an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.kv.Del(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// generateToken creates a cryptographically random session identifier.
func generateToken() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
