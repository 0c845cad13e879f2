package redis

import (
	"context"

	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient cria um cliente Redis usado pelo armazenamento de marcadores de
// onboarding.
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
