package notification

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is the ephemeral key-value channel for reservation messages.
// Entries expire on their own; a Get after expiry is a miss, not an
// error. The channel is lossy by contract.
type Store interface {
	Put(ctx context.Context, key, message string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool)
}

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns the default single-process backend.
func NewMemoryStore(defaultTTL time.Duration) Store {
	return &memoryStore{
		cache: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (s *memoryStore) Put(_ context.Context, key, message string, ttl time.Duration) error {
	s.cache.Set(key, message, ttl)
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return "", false
	}
	msg, ok := v.(string)
	return msg, ok
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a shared backend so every API replica sees the
// same pending messages.
func NewRedisStore(url string) (Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &redisStore{client: client}, nil
}

func (s *redisStore) Put(ctx context.Context, key, message string, ttl time.Duration) error {
	return s.client.Set(ctx, key, message, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool) {
	msg, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return msg, true
}
