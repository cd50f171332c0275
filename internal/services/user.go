package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserOutDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserOutDTO, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO, rawRequestBody []byte) (*dto.UserOutDTO, error)
}

type UserService struct {
	*BaseService
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{
		BaseService: NewBaseService(logger),
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.UsersList); err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewUserOutList(users), nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserOutDTO, error) {
	a, err := s.CheckPermission(ctx, authz.UsersCreate)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflictError("Email already exists", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if err := requireText("name", payload.Name); err != nil {
		return nil, err
	}

	role := constants.RoleRequester
	if payload.Role != "" {
		role = constants.Role(payload.Role)
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role %q", payload.Role)
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.NewString(),
		Name:         payload.Name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	user.CreatedAt, user.UpdatedAt = now, now

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("id", created.ID), zap.String("by", a.ID))
	out := dto.NewUserOut(created)
	return &out, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO, rawRequestBody []byte) (*dto.UserOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.UsersUpdate); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}

	sent, err := utils.SentFields(rawRequestBody)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON body")
	}

	if _, ok := sent["name"]; ok && payload.Name != nil {
		if err := requireText("name", *payload.Name); err != nil {
			return nil, err
		}
		user.Name = *payload.Name
	}
	if _, ok := sent["role"]; ok && payload.Role != nil {
		role := constants.Role(*payload.Role)
		if !role.IsValid() {
			return nil, apperrors.NewValidationError("unknown role %q", *payload.Role)
		}
		user.Role = role
	}
	if _, ok := sent["password"]; ok && payload.Password != nil {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	out := dto.NewUserOut(updated)
	return &out, nil
}
