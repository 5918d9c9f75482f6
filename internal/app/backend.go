package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/appdeck/internal/config"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/redis"
	"github.com/MrSnakeDoc/appdeck/internal/store"
	"github.com/MrSnakeDoc/appdeck/internal/store/file"
	"github.com/MrSnakeDoc/appdeck/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/appdeck/internal/store/redis"
)

// OpenBackend builds the store backend selected by cfg. The Redis client is
// returned so the caller can report on it and close it; it is nil for the
// other backends.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Backend, *goredis.Client, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("using in-memory store, apps are lost on exit")
		return memory.New(), nil, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		backend := redisstore.NewBackend(client, cfg.RedisKey)
		log.Info("using redis store", logger.String("key", backend.Key()))
		return backend, client, nil

	default:
		log.Info("using file store", logger.String("path", cfg.DataFile))
		return file.New(cfg.DataFile), nil, nil
	}
}
