package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// InitRedis connects the catalog cache. A missing or unreachable Redis leaves
// RedisClient nil and the console runs without cache.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisURL == "" && cfg.RedisAddr == "" {
		Logger.Info("redis not configured, running without cache")
		return nil
	}

	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			Logger.Warn("failed to parse redis url, running without cache", zap.Error(err))
			return nil
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		Logger.Warn("redis connection failed, running without cache", zap.Error(err))
		_ = client.Close()
		return nil
	}

	Logger.Info("redis connected", zap.String("addr", opt.Addr))
	RedisClient = client
	return client
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
