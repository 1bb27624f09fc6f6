package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionTTL matches the guest cookie horizon so a session and the cookie
// carrying it expire together.
const SessionTTL = 30 * 24 * time.Hour

const sessionKeyPrefix = "session__"

// Store maps opaque session tokens to user ids. Tokens are minted here and
// never derived from user data.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	// Lookup returns the user id a token maps to, or "" if the token is
	// unknown or expired.
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type RedisStore struct {
	inner *redis.Client
}

// GetRedisStore connects to the redis instance specified by env.
func GetRedisStore() (*RedisStore, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	_, err := redisClient.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}
	return &RedisStore{inner: redisClient}, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	if err := s.inner.Set(ctx, sessionKey(token), userID, SessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	res, err := s.inner.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return res, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.inner.Del(ctx, sessionKey(token)).Err()
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore is an in-process Store for tests and single-node development
// runs. Not suitable behind more than one server process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(SessionTTL)}
	return token, nil
}

func (s *MemoryStore) Lookup(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, token)
		return "", nil
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
