package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/interface8/Prompt-8/internal/logger"
	"github.com/interface8/Prompt-8/internal/types"
)

// ListingCache keeps the public marketplace listing warm. Misses and cache
// errors fall through to the database; Invalidate is called on prompt create.
type ListingCache interface {
	GetListing(ctx context.Context) ([]*types.Prompt, bool)
	SetListing(ctx context.Context, prompts []*types.Prompt)
	Invalidate(ctx context.Context)
	Close() error
}

type listingCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

func NewListingCache(log *logger.Logger) (ListingCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &listingCache{
		log: log.With("service", "RedisListingCache"),
		rdb: rdb,
		key: "marketplace:listing",
		ttl: 60 * time.Second,
	}, nil
}

func (c *listingCache) GetListing(ctx context.Context) ([]*types.Prompt, bool) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Listing cache read failed", "error", err)
		}
		return nil, false
	}
	var prompts []*types.Prompt
	if err := json.Unmarshal(raw, &prompts); err != nil {
		c.log.Warn("Listing cache payload corrupt, dropping", "error", err)
		_ = c.rdb.Del(ctx, c.key).Err()
		return nil, false
	}
	return prompts, true
}

func (c *listingCache) SetListing(ctx context.Context, prompts []*types.Prompt) {
	raw, err := json.Marshal(prompts)
	if err != nil {
		c.log.Warn("Listing cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Listing cache write failed", "error", err)
	}
}

func (c *listingCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.log.Warn("Listing cache invalidate failed", "error", err)
	}
}

func (c *listingCache) Close() error {
	return c.rdb.Close()
}
