// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is the minimal key-value contract the session store needs: set with
// TTL, get, delete. Get reports presence separately from failure so an
// expired key is not an error.
type KV interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// ValkeyKV backs sessions with a Valkey (Redis-compatible) server.
type ValkeyKV struct {
	client *redis.Client
}

// ConnectValkey creates a Valkey client, verifies it with a ping, and
// wraps it as a KV.
func ConnectValkey(host, port, password string) (*ValkeyKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return &ValkeyKV{client: client}, nil
}

// NewValkeyKV wraps an existing client. Useful for tests that manage
// their own connection.
func NewValkeyKV(client *redis.Client) *ValkeyKV {
	return &ValkeyKV{client: client}
}

func (v *ValkeyKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return v.client.Set(ctx, key, value, ttl).Err()
}

func (v *ValkeyKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := v.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (v *ValkeyKV) Del(ctx context.Context, key string) error {
	return v.client.Del(ctx, key).Err()
}

// Close releases the underlying client.
func (v *ValkeyKV) Close() error {
	return v.client.Close()
}

// MemoryKV is an in-process KV for tests and development. Expiry is
// checked lazily on Get.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryKV creates an empty in-process KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]memoryEntry)}
}

func (m *MemoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryKV) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
