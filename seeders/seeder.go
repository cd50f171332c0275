package seeders

import (
	"context"
	"errors"
	"strings"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeedDemoAdmin creates the configured admin account once. It runs at startup
// outside any request, so failures are logged and swallowed.
func SeedDemoAdmin(ctx context.Context, users repositories.UserRepositoryInterface, cfg config.SeedConfig, logger *zap.Logger) {
	if !cfg.InitDemoData {
		return
	}
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	logger = logger.With(zap.String("email", email))

	if _, err := users.FindByEmail(ctx, email); err == nil {
		logger.Debug("demo admin already exists")
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("skip demo admin: lookup failed", zap.Error(err))
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Warn("skip demo admin: hash password", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	admin := &entities.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        email,
		Role:         constants.RoleAdmin,
		PasswordHash: hash,
	}
	admin.CreatedAt, admin.UpdatedAt = now, now

	if _, err := users.CreateUser(ctx, admin); err != nil {
		logger.Warn("skip demo admin: create failed", zap.Error(err))
		return
	}
	logger.Info("demo admin created")
}
