package middleware

import (
	"context"
	"strings"

	"gearguard/internal/authz"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to a stored user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	logger        *zap.Logger
}

func NewAuthMiddleware(authenticator Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Auth rejects the request with 401 unless it carries a valid bearer token for
// an existing user, then stores that user's id and role in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Debug("empty Authorization header", zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.NewUnauthenticatedError("Not authenticated", apperrors.ErrEmptyAuthHeader), m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("malformed Authorization header")
			return utils.ErrorResponse(c, apperrors.NewUnauthenticatedError("Invalid authorization header", apperrors.ErrInvalidAuthHeader), m.logger)
		}

		user, err := m.authenticator.Authenticate(c.Request().Context(), parts[1])
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}

		ctx := utils.WithActor(c.Request().Context(), user.ID, user.Role)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireAction rejects callers whose role may not perform action. It must run
// after Auth.
func RequireAction(action authz.Action, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.NewUnauthenticatedError("Not authenticated", err), logger)
			}
			if err := authz.Authorize(role, action); err != nil {
				logger.Warn("action denied", zap.String("role", role.String()), zap.String("action", string(action)))
				return utils.ErrorResponse(c, err, logger)
			}
			return next(c)
		}
	}
}
