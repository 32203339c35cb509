package pkg

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestLimiter wraps a token-bucket rate.Limiter for request admission.
type RequestLimiter struct {
	local  *rate.Limiter
	logger *zap.Logger
}

// NewRequestLimiter creates a limiter; if rps=0, it's unlimited. A burst of
// 0 defaults to rps.
func NewRequestLimiter(rps, burst int, logger *zap.Logger) *RequestLimiter {
	var local *rate.Limiter
	if rps > 0 {
		if burst <= 0 {
			burst = rps
		}
		local = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &RequestLimiter{local: local, logger: logger}
}

// Allow checks if a token is available.
func (l *RequestLimiter) Allow() bool {
	if l == nil || l.local == nil {
		return true // Unlimited
	}
	if !l.local.Allow() {
		l.logger.Warn("Rate limit exceeded", zap.Int("burst", l.local.Burst()))
		return false
	}
	return true
}
