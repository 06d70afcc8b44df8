package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
	"github.com/ForkFiesta/note-graph-service/pkg/limiter"
)

// RateLimiter creates rate limiting middleware backed by the given limiter.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			count := bucket.TakeAvailable(1)
			if count == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
