package idempotency

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisStore guarda chaves de idempotência de booking com SETNX. O valor é
// um token único só para inspeção em debug; o que importa é a posse da chave
// dentro do TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Acquire(
	ctx context.Context,
	key string,
	ttl time.Duration,
) (bool, error) {

	token := uuid.NewString()

	acquired, err := s.client.SetNX(ctx, "booking:idem:"+key, token, ttl).Result()
	if err != nil {
		return false, err
	}
	return acquired, nil
}
