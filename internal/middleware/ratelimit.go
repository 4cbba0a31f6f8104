package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisclient "github.com/edudraft/edudraft-backend/internal/clients/redis"
	"github.com/edudraft/edudraft-backend/internal/logger"
	"github.com/edudraft/edudraft-backend/internal/requestdata"
)

type RateLimitMiddleware struct {
	log    *logger.Logger
	cache  redisclient.Cache
	limit  int
	window time.Duration
}

func NewRateLimitMiddleware(baseLog *logger.Logger, cache redisclient.Cache, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		log:    baseLog.With("middleware", "RateLimitMiddleware"),
		cache:  cache,
		limit:  limit,
		window: window,
	}
}

// LimitGenerations caps generation starts per user per fixed window. With no
// cache configured the limiter is a pass-through; generation still has the
// credit check as its backstop.
func (rm *RateLimitMiddleware) LimitGenerations() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rm.cache == nil || rm.limit <= 0 {
			c.Next()
			return
		}
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == uuid.Nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:generate:%s:%d", rd.UserID, time.Now().Unix()/int64(rm.window.Seconds()))
		count, err := rm.cache.Incr(c.Request.Context(), key)
		if err != nil {
			// Rate limiting is advisory; a cache outage must not take
			// generation down with it.
			rm.log.Warn("Rate limit counter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rm.cache.Expire(c.Request.Context(), key, rm.window); err != nil {
				rm.log.Warn("Rate limit expiry failed", "key", key, "error", err)
			}
		}
		if count > int64(rm.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many generation requests, slow down",
			})
			return
		}
		c.Next()
	}
}
