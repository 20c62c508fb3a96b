package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "evalbank:selection:"

// RedisSelectionStore keeps selections in Redis with a TTL refreshed on
// every write.
type RedisSelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSelectionStore builds a Redis-backed selection store.
func NewRedisSelectionStore(addr, password string, ttl time.Duration) *RedisSelectionStore {
	return &RedisSelectionStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

// Get resolves a session id to its stored selection.
func (s *RedisSelectionStore) Get(sessionID string) (Selection, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return Selection{}, false, nil
	}
	if err != nil {
		return Selection{}, false, err
	}
	var sel Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return Selection{}, false, err
	}
	return sel, true, nil
}

// Put writes a selection with TTL.
func (s *RedisSelectionStore) Put(sessionID string, sel Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err()
}

// Delete removes a session's selection.
func (s *RedisSelectionStore) Delete(sessionID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
