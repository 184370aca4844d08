package continuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// RedisStore хранилище снапшотов в Redis. TTL отдается самому Redis.
type RedisStore struct {
	client RedisClient
}

// NewRedisStore создает новый экземпляр хранилища
func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

// Save записывает снапшот с TTL
func (s *RedisStore) Save(ctx context.Context, key string, snapshot *domain.ContinuationSnapshot, ttl time.Duration) error {
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - SET: %v", ErrExecQuery, err)
	}
	return nil
}

// Take читает и удаляет снапшот атомарно (GETDEL)
func (s *RedisStore) Take(ctx context.Context, key string) (*domain.ContinuationSnapshot, error) {
	payload, err := s.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Take - GETDEL: %v", ErrExecQuery, err)
	}

	return Decode(payload)
}

// Delete удаляет снапшот
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: Delete - DEL: %v", ErrExecQuery, err)
	}
	return nil
}
