package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phuoctoan/shop-orders/internal/redisx"
)

// RedisSessions stores each cart as a JSON array under cart:{session_id}.
// The TTL is refreshed on every save, so the cart lives as long as the
// shopper keeps coming back.
type RedisSessions struct {
	Client *redis.Client
	TTL    time.Duration
}

func (r *RedisSessions) Load(ctx context.Context, key string) (Cart, error) {
	b, err := r.Client.Get(ctx, fmt.Sprintf(redisx.KeyCart, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	var c Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

func (r *RedisSessions) Save(ctx context.Context, key string, c Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, fmt.Sprintf(redisx.KeyCart, key), b, r.TTL).Err()
}

func (r *RedisSessions) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, fmt.Sprintf(redisx.KeyCart, key)).Err()
}
