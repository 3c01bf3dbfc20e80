package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"fooday/internal/domain"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore persists sessions (identity plus cart) as JSON blobs
// with a sliding TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKeyPrefix+session.Token, payload, s.TTL).Err()
}

func (s *RedisSessionStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.Client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+token).Err()
}
