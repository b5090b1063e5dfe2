package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/cityworks/complaint-service/internal/domain"
)

// MemorySequence hands out complaint ids from a process-local counter.
type MemorySequence struct {
	last atomic.Int64
}

// NewMemorySequence starts the counter after floor.
func NewMemorySequence(floor int64) *MemorySequence {
	seq := &MemorySequence{}
	seq.last.Store(floor)
	return seq
}

// Next returns the next complaint id.
func (s *MemorySequence) Next(_ context.Context) (string, error) {
	return domain.FormatComplaintID(s.last.Add(1)), nil
}

// RedisSequence hands out complaint ids from a Redis counter shared by every replica.
type RedisSequence struct {
	client *redis.Client
	key    string
	floor  int64

	mu     sync.Mutex
	primed bool
}

// NewRedisSequence builds a sequence on key. The counter is primed to floor
// the first time it is used unless it already exists.
func NewRedisSequence(client *redis.Client, key string, floor int64) *RedisSequence {
	return &RedisSequence{client: client, key: key, floor: floor}
}

// Next increments the shared counter and returns the resulting complaint id.
func (s *RedisSequence) Next(ctx context.Context) (string, error) {
	if err := s.prime(ctx); err != nil {
		return "", err
	}
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return "", fmt.Errorf("incr %s: %w", s.key, err)
	}
	return domain.FormatComplaintID(n), nil
}

func (s *RedisSequence) prime(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primed {
		return nil
	}
	if err := s.client.SetNX(ctx, s.key, s.floor, 0).Err(); err != nil {
		return fmt.Errorf("prime %s: %w", s.key, err)
	}
	s.primed = true
	return nil
}

// PostgresSequence hands out complaint ids from the complaint_seq database sequence.
type PostgresSequence struct {
	pool DB
}

// NewPostgresSequence builds a sequence backed by pool.
func NewPostgresSequence(pool DB) *PostgresSequence {
	return &PostgresSequence{pool: pool}
}

// Next returns the next complaint id.
func (s *PostgresSequence) Next(ctx context.Context) (string, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT nextval('complaint_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("nextval complaint_seq: %w", err)
	}
	return domain.FormatComplaintID(n), nil
}
