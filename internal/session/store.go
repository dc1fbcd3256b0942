// Package session maps opaque session tokens to authenticated users and
// decides whether a session may perform an action.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"warbler/internal/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store persists at most one value per token: the authenticated user's id.
// Handlers create and destroy entries on login/logout; Resolver only reads.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Lookup(ctx context.Context, token string) (uint, bool, error)
	Destroy(ctx context.Context, token string) error
}

// RedisStore keeps sessions in Redis so they survive restarts and are
// shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, cache.SessionKey(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, cache.SessionKey(token)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, cache.SessionKey(token)).Err()
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is a process-local fallback used when Redis is
// unavailable (development) and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryStore returns an in-memory Store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return 0, false, nil
	}
	return entry.userID, true, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
