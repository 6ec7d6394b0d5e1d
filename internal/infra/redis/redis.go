package redis

import (
	"context"
	"fmt"
	"time"

	"plume-go/internal/config"
	"plume-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var Client *redis.Client

// Init 初始化Redis客户端
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", cfg.Addr()),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return nil
}

// Close 关闭Redis连接
func Close() error {
	if Client == nil {
		return nil
	}
	logger.Info("Redis connection closed")
	return Client.Close()
}

// Get 获取Redis客户端实例
func Get() *redis.Client {
	return Client
}

const tokenBlacklistPrefix = "auth:blacklist:"

// BlacklistToken 注销时把 token 拉黑至自然过期
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	return Client.Set(ctx, tokenBlacklistPrefix+token, 1, ttl).Err()
}

// IsTokenBlacklisted 检查 token 是否已被拉黑
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := Client.Exists(ctx, tokenBlacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrWithWindow 固定窗口计数器，首个请求设置过期时间，返回窗口内累计次数
// 用于接口限流
func IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := Client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
