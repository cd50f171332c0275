package services

import (
	"context"
	"slices"
	"strings"

	"gearguard/internal/authz"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

// Actor is the authenticated caller of a service method.
type Actor struct {
	ID   string
	Role constants.Role
}

type BaseService struct {
	logger *zap.Logger
}

func NewBaseService(logger *zap.Logger) *BaseService {
	return &BaseService{logger: logger}
}

// CurrentActor reads the caller placed in ctx by the auth middleware.
func (s *BaseService) CurrentActor(ctx context.Context) (Actor, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return Actor{}, apperrors.NewUnauthenticatedError("Not authenticated", err)
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return Actor{}, apperrors.NewUnauthenticatedError("Not authenticated", err)
	}
	return Actor{ID: userID, Role: role}, nil
}

// CheckPermission returns the caller when its role allows action.
func (s *BaseService) CheckPermission(ctx context.Context, action authz.Action) (Actor, error) {
	a, err := s.CurrentActor(ctx)
	if err != nil {
		return Actor{}, err
	}
	if err := authz.Authorize(a.Role, action); err != nil {
		s.logger.Warn("permission denied",
			zap.String("userID", a.ID),
			zap.String("role", a.Role.String()),
			zap.String("action", string(action)),
		)
		return a, err
	}
	return a, nil
}

// requireText rejects a value that is empty once surrounding whitespace is
// ignored. Accepted values are stored exactly as sent.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError("%s must not be blank", field)
	}
	return nil
}

// requirePatchedText applies requireText to field only when a patch set it.
func requirePatchedText(applied []string, field, value string) error {
	if !slices.Contains(applied, field) {
		return nil
	}
	return requireText(field, value)
}
