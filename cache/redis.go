package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/utils"
)

const keyPrefix = "diary:layout:"

// RedisCache shares layouts between instances. Redis failures are logged
// and read as misses so the diary keeps working without the cache.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{Client: client, TTL: ttl}, nil
}

func layoutKey(date string) string {
	return keyPrefix + date
}

func (c *RedisCache) Get(ctx context.Context, date, fingerprint string) (*diary.Layout, bool) {
	raw, err := c.Client.Get(ctx, layoutKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		utils.ErrorLogger.Errorf("Redis get %s: %v", layoutKey(date), err)
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		utils.ErrorLogger.Errorf("Corrupt cached layout for %s: %v", date, err)
		return nil, false
	}
	if e.Fingerprint != fingerprint || e.Layout == nil {
		return nil, false
	}
	return e.Layout, true
}

func (c *RedisCache) Set(ctx context.Context, date, fingerprint string, layout *diary.Layout) {
	raw, err := json.Marshal(entry{Fingerprint: fingerprint, Layout: layout})
	if err != nil {
		utils.ErrorLogger.Errorf("Encode layout for %s: %v", date, err)
		return
	}
	if err := c.Client.Set(ctx, layoutKey(date), raw, c.TTL).Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis set %s: %v", layoutKey(date), err)
	}
}

func (c *RedisCache) InvalidateDate(ctx context.Context, date string) {
	if err := c.Client.Del(ctx, layoutKey(date)).Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis del %s: %v", layoutKey(date), err)
	}
}

func (c *RedisCache) InvalidateAll(ctx context.Context) {
	iter := c.Client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis scan %s*: %v", keyPrefix, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		utils.ErrorLogger.Errorf("Redis del layouts: %v", err)
	}
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}
