package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devopscompass/waitlist-api/internal/ratelimit"
	"github.com/devopscompass/waitlist-api/pkg/logger"
)

var (
	submissionLimitBody = gin.H{
		"error":      "Too many requests from this IP, please try again after 15 minutes.",
		"retryAfter": "15 minutes",
	}
	generalLimitBody = gin.H{
		"error": "Too many requests, please slow down.",
	}
)

type RouterDeps struct {
	Logger            logger.Logger
	Env               string
	MaxBodyBytes      int64
	SubmissionLimiter *ratelimit.Limiter
	GeneralLimiter    *ratelimit.Limiter
	Waitlist          *WaitlistHandler
	Health            *HealthHandler
}

// NewRouter wires the full HTTP surface. Shared by main and the handler
// tests so route wiring is exercised the same way in both.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(deps.Logger, deps.Env))
	router.Use(BodySizeLimit(deps.MaxBodyBytes))

	submissionTier := RateLimitMiddleware(deps.SubmissionLimiter, deps.Logger, submissionLimitBody)
	generalTier := RateLimitMiddleware(deps.GeneralLimiter, deps.Logger, generalLimitBody)

	router.GET("/", deps.Health.Liveness)

	api := router.Group("/api")
	{
		api.GET("/health", generalTier, deps.Health.Health)

		waitlist := api.Group("/waitlist")
		{
			waitlist.POST("", submissionTier, deps.Waitlist.Join)
			waitlist.GET("/stats", generalTier, deps.Waitlist.Stats)
			waitlist.GET("/schema", generalTier, deps.Waitlist.Schema)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return router
}
