package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/storefront/internal/core/port"
)

// AttemptStoreConfig tunes the sliding-window attempt store.
type AttemptStoreConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// AttemptStore keeps request timestamps in Redis sorted sets, one set per
// identifier, scored by nanosecond timestamps. The middleware trims, counts
// and records against it to enforce sliding-window limits.
type AttemptStore struct {
	client *redis.Client
	cfg    AttemptStoreConfig
}

func NewAttemptStore(client *redis.Client, cfg AttemptStoreConfig) *AttemptStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "storefront:ratelimit"
	}
	return &AttemptStore{client: client, cfg: cfg}
}

// RecordAttempt appends one attempt and refreshes the key TTL in a single
// round trip.
func (s *AttemptStore) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := s.key(identifier)
	score := at.UnixNano()

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: score})
	if s.cfg.TTL > 0 {
		pipe.Expire(ctx, key, s.cfg.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record attempt: %w", err)
	}

	return nil
}

// TrimWindow drops attempts that fell out of the window.
func (s *AttemptStore) TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error {
	if window <= 0 {
		return errors.New("window must be positive")
	}

	threshold := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.key(identifier), "-inf", threshold).Err(); err != nil {
		return fmt.Errorf("redis trim window: %w", err)
	}

	return nil
}

// CountAttempts counts attempts inside the window ending at reference.
func (s *AttemptStore) CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}

	min := strconv.FormatInt(reference.Add(-window).UnixNano(), 10)
	max := strconv.FormatInt(reference.UnixNano(), 10)

	count, err := s.client.ZCount(ctx, s.key(identifier), min, max).Result()
	if err != nil {
		return 0, fmt.Errorf("redis count attempts: %w", err)
	}

	return int(count), nil
}

// OldestAttempt returns the earliest attempt still inside the window, used to
// compute the retry-after hint.
func (s *AttemptStore) OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error) {
	if window <= 0 {
		return time.Time{}, false, errors.New("window must be positive")
	}

	values, err := s.client.ZRangeByScore(ctx, s.key(identifier), &redis.ZRangeBy{
		Min:   strconv.FormatInt(reference.Add(-window).UnixNano(), 10),
		Max:   strconv.FormatInt(reference.UnixNano(), 10),
		Count: 1,
	}).Result()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis oldest attempt: %w", err)
	}
	if len(values) == 0 {
		return time.Time{}, false, nil
	}

	ts, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse attempt timestamp: %w", err)
	}

	return time.Unix(0, ts), true, nil
}

func (s *AttemptStore) key(identifier string) string {
	return fmt.Sprintf("%s:%s", s.cfg.KeyPrefix, identifier)
}

var _ port.RateLimitStore = (*AttemptStore)(nil)
