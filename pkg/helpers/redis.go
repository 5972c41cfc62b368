package helpers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client) error {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return rdb.Ping(c).Err()
}

// UserChannel is the pub/sub channel carrying live notifications for one user.
func UserChannel(userID string) string {
	return "notifications:user:" + userID
}

// RedisPublishJSON marshals value and publishes it on channel.
func RedisPublishJSON(ctx context.Context, rdb *redis.Client, channel string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, channel, b).Err()
}
