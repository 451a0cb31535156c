package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	stripe "github.com/stripe/stripe-go/v82"
)

// CacheService fronts the gateway's price objects. Prices are immutable
// once created, so a cached copy never goes stale in a harmful way; the
// TTL only bounds memory. A cache miss or cache failure is never an
// error for callers, they fall through to the gateway.
type CacheService interface {
	GetPrice(ctx context.Context, priceID string) (*stripe.Price, error)
	SetPrice(ctx context.Context, price *stripe.Price, ttl time.Duration) error
}

type cacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) CacheService {
	return &cacheService{client: client}
}

func priceKey(priceID string) string {
	return fmt.Sprintf("price:%s", priceID)
}

func (c *cacheService) GetPrice(ctx context.Context, priceID string) (*stripe.Price, error) {
	data, err := c.client.Get(ctx, priceKey(priceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	price := &stripe.Price{}
	if err := json.Unmarshal(data, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (c *cacheService) SetPrice(ctx context.Context, price *stripe.Price, ttl time.Duration) error {
	data, err := json.Marshal(price)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, priceKey(price.ID), data, ttl).Err()
}
