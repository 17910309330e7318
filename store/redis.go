package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultRedisPrefix namespaces exclusion keys in a shared Redis instance.
const defaultRedisPrefix = "autotranslate:exclusions:"

// RedisStore is a Redis-backed exclusion store. Each triple maps to one key
// holding the JSON-encoded path list; exclusions never expire.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisStoreConfig holds configuration for the Redis exclusion store.
type RedisStoreConfig struct {
	URL       string // Connection URL (e.g., "redis://localhost:6379")
	KeyPrefix string // Prefix for all keys (default: "autotranslate:exclusions:")
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisStoreConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing client.
func NewRedisStoreFromClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(collection, documentID, locale string) string {
	return s.keyPrefix + collection + ":" + documentID + ":" + locale
}

// ExcludedPaths returns the stored list, empty when the key is absent.
func (s *RedisStore) ExcludedPaths(ctx context.Context, collection, documentID, locale string) ([]string, error) {
	raw, err := s.client.Get(ctx, s.key(collection, documentID, locale)).Result()
	if err == redis.Nil {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// SetExcludedPaths upserts the JSON-encoded list under the triple's key.
func (s *RedisStore) SetExcludedPaths(ctx context.Context, collection, documentID, locale string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	raw, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(collection, documentID, locale), raw, 0).Err()
}

// DeleteForDocument scans for every locale's key of the document and deletes
// them.
func (s *RedisStore) DeleteForDocument(ctx context.Context, collection, documentID string) error {
	pattern := s.keyPrefix + collection + ":" + documentID + ":*"
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Verify RedisStore implements ExclusionStore.
var _ ExclusionStore = (*RedisStore)(nil)
