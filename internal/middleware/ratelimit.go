package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/HThanh-how/LBG/internal/models"
	appErrors "github.com/HThanh-how/LBG/pkg/errors"
	"github.com/HThanh-how/LBG/pkg/response"
)

// RateLimit enforces a fixed-window request quota per caller, counted
// in Redis. Authenticated callers are keyed by user ID, anonymous ones
// by client IP. A nil client disables the limiter.
func RateLimit(client *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if raw, exists := c.Get(ContextUserKey); exists {
			if claims, ok := raw.(*models.JWTClaims); ok {
				caller = claims.UserID
			}
		}

		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, caller, time.Now().Unix()/int64(window.Seconds()))
		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down must not take requests with it.
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			response.Error(c, appErrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
