package middleware

import (
	"fmt"
	"net/http"
	"time"

	infraRedis "plume-go/internal/infra/redis"
	"plume-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit 固定窗口限流中间件，按 客户端IP+路径 计数
// Redis 异常时放行，限流只作保护不作依赖
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		count, err := infraRedis.IncrWithWindow(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(requests) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "请求过于频繁，请稍后重试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
