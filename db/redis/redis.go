package redis

import (
	"context"
	"errors"
	"movie_tracker/configs"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

// Connect dials redis using the loaded configs. It returns nil without an
// error when no REDIS_URL is configured, callers treat a nil *Client as
// "blacklist disabled".
func Connect() (*Client, error) {
	conf := configs.GetConfigs()
	if conf.RedisUrl == "" {
		return nil, nil
	}
	time.Sleep(time.Duration(conf.WaitForRedisConnectionSec) * time.Second)

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.RedisUrl,
		Password: conf.RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", errors.New("redis client not connected")
	}
	return c.rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, duration time.Duration) error {
	if c == nil {
		return errors.New("redis client not connected")
	}
	return c.rdb.Set(ctx, key, value, duration).Err()
}
