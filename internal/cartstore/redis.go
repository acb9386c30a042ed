package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsemenov/storefront/internal/cart"
)

// Carts live exactly as long as the session: the TTL is refreshed on every
// save and expiry silently discards the cart.
const sessionTTL = 30 * time.Minute

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: sessionTTL}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return decode(ctx, sessionID, data), nil
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, c cart.Cart) error {
	data, err := encode(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
