// Redis 연결 초기화 유틸
//
// 환경변수 (internal/config 경유):
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_PASSWORD
//   - REDIS_DB (default: 0)

package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	dbNum, err := strconv.Atoi(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       dbNum,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
