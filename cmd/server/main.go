package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devopscompass/waitlist-api/adapters/event"
	httpAdapter "github.com/devopscompass/waitlist-api/adapters/http"
	"github.com/devopscompass/waitlist-api/adapters/persistence"
	waitlistUC "github.com/devopscompass/waitlist-api/internal/application/usecase/waitlist"
	"github.com/devopscompass/waitlist-api/internal/config"
	"github.com/devopscompass/waitlist-api/internal/domain/submission"
	"github.com/devopscompass/waitlist-api/internal/ratelimit"
	"github.com/devopscompass/waitlist-api/pkg/logger"
	"github.com/devopscompass/waitlist-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting waitlist API server", zap.String("env", cfg.App.Env))

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg.Tracing.OTLPEndpoint, "waitlist-api", appLogger)
		if err != nil {
			appLogger.Fatal("cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// The store is optional: without a DSN the pipeline runs in degraded
	// mode, accepting submissions without persistence or duplicate checks.
	var dbPool *pgxpool.Pool
	var submissionRepo submission.Repository
	if cfg.DB.DSN != "" {
		dbPool, err = persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Postgres", err)
		}
		defer dbPool.Close()
		submissionRepo = persistence.NewPostgresSubmissionRepo(dbPool, appLogger)
	} else {
		appLogger.Warn("Database not configured. Submissions will NOT be persisted.")
	}

	// Rate-limit counters live in Redis when available so replicas share
	// state; otherwise they fall back to per-process memory.
	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		limitStore = persistence.NewRedisRateLimitStore(redisClient)
	}
	submissionLimiter := ratelimit.NewLimiter(limitStore, "submission",
		cfg.RateLimit.SubmissionWindow, cfg.RateLimit.SubmissionMax)
	generalLimiter := ratelimit.NewLimiter(limitStore, "general",
		cfg.RateLimit.GeneralWindow, cfg.RateLimit.GeneralMax)

	var kafkaClient *event.KafkaProducerClient
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err = event.NewKafkaProducerClient(cfg)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		appLogger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	joinUseCase := waitlistUC.NewJoinWaitlistUseCase(submissionRepo, kafkaClient, appLogger)
	statsUseCase := waitlistUC.NewStatsUseCase(submissionRepo, appLogger)

	waitlistHandler := httpAdapter.NewWaitlistHandler(joinUseCase, statsUseCase, appLogger)
	healthHandler := httpAdapter.NewHealthHandler(dbPool)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Logger:            appLogger,
		Env:               cfg.App.Env,
		MaxBodyBytes:      cfg.App.MaxBodyBytes,
		SubmissionLimiter: submissionLimiter,
		GeneralLimiter:    generalLimiter,
		Waitlist:          waitlistHandler,
		Health:            healthHandler,
	})

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
