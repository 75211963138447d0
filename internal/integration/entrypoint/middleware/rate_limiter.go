package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dompetku/backend/internal/application/adapter"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/entrypoint/dto"
)

// RateLimiter throttles authentication endpoints per client IP. Attempt
// counting lives behind adapter.LoginLimiter so the window survives restarts.
type RateLimiter struct {
	limiter adapter.LoginLimiter
}

// NewRateLimiter creates a new rate limiter middleware instance.
func NewRateLimiter(limiter adapter.LoginLimiter) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode or test environment
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Fail open when the limiter backend is unreachable.
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many attempts, please try again later",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
