package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/riskforge/payrisk/pkg"
)

// RateLimit returns Gin middleware enforcing a global request budget.
func RateLimit(limiter *pkg.RequestLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(pkg.ErrRateLimitedCode.Status, pkg.ErrorResponse{
			Code:    pkg.ErrRateLimitedCode.Code,
			Message: pkg.ErrRateLimitedCode.Message,
		})
	}
}
