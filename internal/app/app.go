package app

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"hris-leave/internal/config"
	"hris-leave/internal/employee"
	"hris-leave/internal/leave"
	"hris-leave/internal/leavetype"
	"hris-leave/internal/messaging/kafka"
	"hris-leave/internal/middleware"
	"hris-leave/internal/rbac"
	"hris-leave/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in migration order.
func Models() []any {
	return []any{
		&leavetype.LeaveType{},
		&employee.Employee{},
		&leave.LeaveRequest{},
		&leave.LeaveBalance{},
		&kafka.OutboxEvent{},
		&rbac.PolicyRow{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// BuildApp connects infrastructure, migrates the schema and mounts every
// route on router.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app")

	db, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	log.Info("database connection established")

	// Redis only backs the catalog cache and idempotency keys, so the API
	// still starts without it.
	var rdb *redis.Client
	if client, err := connection.ConnectRedisWithRetry(cfg.Redis); err != nil {
		log.Warn("redis unavailable, running without cache and idempotency", zap.Error(err))
	} else {
		rdb = client
		log.Info("redis connection established")
	}

	if err := Migrate(db); err != nil {
		return err
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		cors.New(corsConfig(cfg.CORS)),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(context.Background(), router, cfg, db, rdb, logger)
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Idempotent-Replay"},
	}
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowCredentials = true
	return c
}
