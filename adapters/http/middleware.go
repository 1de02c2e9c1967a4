package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devopscompass/waitlist-api/internal/ratelimit"
	"github.com/devopscompass/waitlist-api/pkg/apperror"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

// ErrorMiddleware renders errors reported via c.Error as the JSON bodies of
// the public contract. Internal causes are logged server-side and included in
// the response only outside production.
func ErrorMiddleware(log logger.Logger, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			log.Error("Unhandled error", err,
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		status := apperror.ToHTTPStatus(appErr)
		switch {
		case errors.Is(appErr, apperror.ErrConflict):
			c.JSON(status, gin.H{"error": appErr.Message, "message": appErr.Details})
		case errors.Is(appErr, apperror.ErrInternal):
			log.Error("Request failed", appErr.Err,
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			body := gin.H{"error": appErr.Message}
			if env != "production" && appErr.Err != nil {
				body["details"] = appErr.Err.Error()
			}
			c.JSON(status, body)
		default:
			c.JSON(status, gin.H{"error": appErr.Message})
		}
	}
}

// BodySizeLimit rejects oversized request bodies before they reach any
// handler. This ceiling is independent of the per-field length checks.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RateLimitMiddleware guards a route group with one limiter tier, keyed by
// client address. A throttled request is answered here and never reaches the
// pipeline. Counter-store failures fail open.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log logger.Logger, body gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), addr)
		if err != nil {
			log.Warn("Rate limit store unavailable, allowing request", zap.Error(err))
		}
		if !allowed {
			log.Warn("Rate limit exceeded", zap.String("ip", addr))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, body)
			return
		}

		c.Next()
	}
}
