package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"wordguess/internal/model"
)

// RedisStore keeps each record as its own key with a 60s expiry, so Redis
// itself is the background sweep.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed event store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) PutGuess(ctx context.Context, g *model.GuessRecord) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, g.ID, data, RecordTTL).Err()
}

func (s *RedisStore) PutEvent(ctx context.Context, e *model.ActionRecord) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, e.ID, data, RecordTTL).Err()
}

func (s *RedisStore) ListPending(ctx context.Context) (*model.PendingSnapshot, error) {
	snap := model.EmptySnapshot()
	now := time.Now()

	guessKeys, err := s.scanKeys(ctx, GuessPrefix+"*")
	if err != nil {
		return nil, err
	}
	for _, key := range guessKeys {
		var g model.GuessRecord
		ok, err := s.load(ctx, key, &g)
		if err != nil {
			return nil, err
		}
		if ok && !g.Processed && !expired(g.Timestamp, now) {
			snap.Guesses = append(snap.Guesses, g)
		}
	}

	eventKeys, err := s.scanKeys(ctx, EventPrefix+"*")
	if err != nil {
		return nil, err
	}
	for _, key := range eventKeys {
		var e model.ActionRecord
		ok, err := s.load(ctx, key, &e)
		if err != nil {
			return nil, err
		}
		if ok && !e.Processed && !expired(e.Timestamp, now) {
			snap.Events = append(snap.Events, e)
		}
	}

	return snap, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, id).Err()
}

func (s *RedisStore) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

// load fetches and unmarshals one record. A key expiring between scan and
// get is not an error, just a miss.
func (s *RedisStore) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		// Corrupt entries are skipped rather than failing the snapshot.
		return false, nil
	}
	return true, nil
}
