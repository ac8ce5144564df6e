package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"teamup-board-api/internal/config"
)

// InitRedis connects to Redis. A redis:// URL takes precedence over host and port.
func InitRedis(cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	log.Info("Redis connection established successfully", zap.String("addr", client.Options().Addr), zap.Int("db", client.Options().DB))
	return client, nil
}

// BoardChannel returns the pub/sub channel carrying a board's change events
func BoardChannel(boardID string) string {
	return fmt.Sprintf("board:%s", boardID)
}

// PublishBoardEvent publishes an encoded change event for a board
func PublishBoardEvent(ctx context.Context, client *redis.Client, boardID string, payload []byte) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return client.Publish(ctx, BoardChannel(boardID), payload).Err()
}

// SubscribeBoardEvents subscribes to a board's change events
func SubscribeBoardEvents(ctx context.Context, client *redis.Client, boardID string) *redis.PubSub {
	if client == nil {
		return nil
	}
	return client.Subscribe(ctx, BoardChannel(boardID))
}
