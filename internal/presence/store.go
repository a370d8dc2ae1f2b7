// Package presence tracks which users have an open websocket session in
// Redis, so any instance can answer "is this user online".
package presence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"famchat/internal/config"

	"github.com/redis/go-redis/v9"
)

// Keys:
//   famchat:presence:<userID> -> unix seconds of last activity, expires after ttl

type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: "famchat",
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewClient connects to Redis and checks the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func (s *Store) key(userID uint64) string {
	return s.prefix + ":presence:" + strconv.FormatUint(userID, 10)
}

func (s *Store) MarkOnline(ctx context.Context, userID uint64) error {
	return s.client.Set(ctx, s.key(userID), s.now().Unix(), s.ttl).Err()
}

// Touch extends the expiry, recreating the key if it already lapsed.
func (s *Store) Touch(ctx context.Context, userID uint64) error {
	ok, err := s.client.Expire(ctx, s.key(userID), s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return s.MarkOnline(ctx, userID)
	}
	return nil
}

func (s *Store) MarkOffline(ctx context.Context, userID uint64) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *Store) IsOnline(ctx context.Context, userID uint64) (bool, error) {
	_, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
