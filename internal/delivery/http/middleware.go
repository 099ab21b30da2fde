package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/elevatedliving/storefront/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CORSMiddleware handles CORS for browser clients of the JSON API
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		// Trailing wildcard matches any suffix, e.g. http://localhost:*
		if strings.HasSuffix(allowed, "*") {
			if strings.HasPrefix(origin, strings.TrimSuffix(allowed, "*")) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// RequestLogger attaches a request-scoped zerolog logger to the request
// context and counts requests per route and status class.
func RequestLogger(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := requestID(c.GetHeader("X-Request-ID"))
		c.Header("X-Request-ID", rid)

		logger := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("remote_ip", c.ClientIP()).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := map[string]string{
			"method": c.Request.Method,
			"route":  route,
			"status": metrics.StatusClass(status),
		}
		reg.Inc(c.Request.Context(), metrics.HTTPRequestsTotal, labels, 1)

		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
			reg.Inc(c.Request.Context(), metrics.HTTPRequestErrorsTotal, labels, 1)
		}
		event.
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http request served")
	}
}

const maxRequestIDLength = 128

// requestID keeps a caller-supplied id only if it is short printable ASCII
// without spaces; otherwise a fresh UUID is issued.
func requestID(supplied string) string {
	if supplied == "" || len(supplied) > maxRequestIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(supplied); i++ {
		if supplied[i] < '!' || supplied[i] > '~' {
			return uuid.NewString()
		}
	}
	return supplied
}

// RateLimitMiddleware rejects clients that exceed their token bucket
func RateLimitMiddleware(limiter *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.Next()
			return
		}

		zerolog.Ctx(c.Request.Context()).Warn().Err(domain.ErrRateLimited).Msg("request rejected")
		_ = c.Error(domain.ErrRateLimited)
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrRateLimited.Error()})
	}
}

// RecoveryMiddleware recovers from panics and logs them
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Msg("recovered from panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
