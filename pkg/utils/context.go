package utils

import (
	"context"
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
)

func ContextWithTimeout(ctx echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), timeout)
}

// WithActor stores the authenticated caller in ctx.
func WithActor(ctx context.Context, userID string, role constants.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || id == "" {
		return "", apperrors.ErrUserNotInContext
	}
	return id, nil
}

func GetUserRoleFromCtx(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok || !role.IsValid() {
		return "", apperrors.ErrUserNotInContext
	}
	return role, nil
}
