package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"civicfix/internal/config"
	"civicfix/internal/core/services"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// redisOTPStore keeps OTP challenges in Redis so multiple instances share
// them. Entry expiry stays authoritative in the entry itself; the Redis
// TTL is garbage collection.
type redisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates a Redis-backed OTP store
func NewRedisOTPStore(cfg config.RedisConfig) services.OTPStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisOTPStore{client: client}
}

func (s *redisOTPStore) Put(ctx context.Context, phone string, entry *services.OTPEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.client.Set(ctx, otpKeyPrefix+phone, payload, ttl).Err()
}

func (s *redisOTPStore) Get(ctx context.Context, phone string) (*services.OTPEntry, error) {
	payload, err := s.client.Get(ctx, otpKeyPrefix+phone).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var entry services.OTPEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKeyPrefix+phone).Err()
}
