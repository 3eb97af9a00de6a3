package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizlens/pkg/utils"
)

// RateLimiter is satisfied by services.RateLimitService. The limiter decides;
// this middleware only resolves the identifier and writes the 429.
type RateLimiter interface {
	Allow(identifier string, function string, ctx context.Context) bool
}

// RateLimitMiddleware throttles one named function. Authenticated requests
// are counted per account, anonymous ones per client IP.
func RateLimitMiddleware(limiter RateLimiter, function string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.GetString("user_id")
		if identifier == "" {
			identifier = c.ClientIP()
		}

		if !limiter.Allow(identifier, function, c.Request.Context()) {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests, please slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
