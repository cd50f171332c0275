package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gearguard/internal/repositories"
	"gearguard/internal/routes"
	"gearguard/pkg/config"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/database/postgresql"
	apperrors "gearguard/pkg/errors"
	applogger "gearguard/pkg/logger"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
	"gearguard/seeders"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.New()

	logger, err := applogger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWT.SecretKey == "change-me-in-production" && cfg.App.Env != "dev" {
		logger.Warn("JWT_SECRET_KEY is the built-in default; set it outside development")
	}

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, cfg.Postgres.DSN, logger.Named("migrate")); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
	}

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger.Named("db"))
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	cacheRepo := newCacheRepository(ctx, cfg.Redis, logger)

	seeders.SeedDemoAdmin(ctx, repositories.NewUserRepository(dbConn, logger.Named("seed")), cfg.Seed, logger.Named("seed"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	e.Use(echomw.RequestID())
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil), logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestLogger(logger.Named("http")))

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	routes.InitRouter(e, dbConn, cacheRepo, jwtSvc, &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		User:      logger.Named("user"),
		Equipment: logger.Named("equipment"),
		Request:   logger.Named("request"),
		Report:    logger.Named("report"),
	}, cfg)

	go func() {
		addr := ":" + strings.TrimPrefix(cfg.Server.Port, ":")
		logger.Info("server started", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCacheRepository uses Redis when configured and reachable, and an
// in-process cache otherwise. Lockout counters are then per instance.
func newCacheRepository(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) repositories.CacheRepositoryInterface {
	if !cfg.Enabled() {
		logger.Info("REDIS_ADDRESS not set, using in-memory login throttle")
		return repositories.NewMemoryCacheRepository(time.Minute)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-memory login throttle", zap.String("address", cfg.Address), zap.Error(err))
		_ = client.Close()
		return repositories.NewMemoryCacheRepository(time.Minute)
	}
	logger.Info("redis connected", zap.String("address", cfg.Address))
	return repositories.NewRedisCacheRepository(client)
}
