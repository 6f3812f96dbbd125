package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"amigowallet/pkg/platform/sentinel"
)

const (
	redisKeyPrefix         = "registration:otp:"
	redisAttemptsKeyPrefix = "registration:otp-attempts:"
)

// RedisStore persists pending codes in Redis with TTL-based eviction so that
// several service replicas share them.
type RedisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedis constructs a Redis-backed OTP store.
func NewRedis(client *redis.Client, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, defaultTTL: defaultTTL}
}

func (s *RedisStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(email), code, ttl)
		pipe.Del(ctx, redisAttemptsKey(email))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

// Find returns sentinel.ErrNotFound when no code is pending or it has expired.
func (s *RedisStore) Find(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, redisKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("otp for %s: %w", email, sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("find otp: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, redisKey(email), redisAttemptsKey(email)).Err(); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

// RecordFailure increments the wrong-code counter for email. The counter
// lives no longer than the default OTP TTL and is reset by Save.
func (s *RedisStore) RecordFailure(ctx context.Context, email string) (int, error) {
	k := redisAttemptsKey(email)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, s.defaultTTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record otp attempt: %w", err)
	}
	return int(incr.Val()), nil
}

func redisKey(email string) string {
	return redisKeyPrefix + strings.ToLower(email)
}

func redisAttemptsKey(email string) string {
	return redisAttemptsKeyPrefix + strings.ToLower(email)
}
