package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
)

var Nil = redis.Nil

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
}

// IsNil reports whether err is the missing-key reply.
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
