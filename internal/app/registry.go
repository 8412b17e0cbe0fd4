package app

import (
	"context"
	"fmt"

	"hris-leave/internal/config"
	"hris-leave/internal/employee"
	"hris-leave/internal/leave"
	"hris-leave/internal/leavetype"
	"hris-leave/internal/messaging/kafka"
	"hris-leave/internal/middleware"
	"hris-leave/internal/rbac"
	"hris-leave/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(db)
	leaveTypeRepo := leavetype.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	balanceRepo := leave.NewBalanceRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return fmt.Errorf("rbac enforcer: %w", err)
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return fmt.Errorf("rbac load policy: %w", err)
	}

	// --- Services ---
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb, cfg.Redis.LeaveTypeTTL, logger)
	if _, err := leaveTypeService.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed leave types: %w", err)
	}

	ledger := leave.NewLedger(balanceRepo, leaveTypeRepo, employeeRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, ledger, leaveTypeRepo, employeeRepo, outboxRepo, cfg.Leave, logger)

	// --- Handlers ---
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Middleware ---
	auth := middleware.AuthMiddleware(cfg.Auth.JWTSecret)
	perUser := middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	idempotency := middleware.Idempotency(rdb, cfg.Redis.IdempotencyTTL, logger)

	// --- Routes Registration ---
	// Every route below requires a valid token.
	api := router.Group("/api/v1")
	api.Use(auth, perUser)
	{
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		leave.RegisterRoutes(api, leaveHandler, leave.DecideCapability(rbacService), idempotency)
		rbac.RegisterRoutes(api, rbacHandler, middleware.RBACAuthorize(rbacService, "rbac", "manage"))
	}

	return nil
}
