package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

const tokenTypeBearer = "bearer"

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenDTO, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
	Me(ctx context.Context) (*dto.UserOutDTO, error)
}

type AuthService struct {
	*BaseService
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		BaseService: NewBaseService(logger),
		userRepo:    userRepo,
		cacheRepo:   cacheRepo,
		jwtService:  jwtService,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenDTO, error) {
	login := strings.ToLower(strings.TrimSpace(payload.Email))
	logger := s.logger.With(zap.String("email", login))

	if err := s.checkLockout(ctx, login); err != nil {
		logger.Warn("login rejected: account locked out")
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, login)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.handleFailedLoginAttempt(ctx, login)
		logger.Warn("login failed: unknown email")
		return nil, apperrors.NewUnauthenticatedError("Invalid email or password", apperrors.ErrInvalidCredentials)
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, login)
		logger.Warn("login failed: wrong password", zap.String("userID", user.ID))
		return nil, apperrors.NewUnauthenticatedError("Invalid email or password", apperrors.ErrInvalidCredentials)
	}

	s.resetLoginAttempts(ctx, login)

	token, err := s.jwtService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	logger.Info("user logged in", zap.String("userID", user.ID))
	return &dto.TokenDTO{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		User:        dto.NewUserOut(user),
	}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticatedError("Invalid token", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthenticatedError("User not found", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserOutDTO, error) {
	a, err := s.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthenticatedError("User not found", apperrors.ErrUnauthenticated)
		}
		return nil, err
	}
	out := dto.NewUserOut(user)
	return &out, nil
}

func (s *AuthService) checkLockout(ctx context.Context, login string) error {
	if s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf(constants.CacheKeyLockout, login)); err == nil {
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many failed login attempts. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyAttempts,
			nil,
		)
	}
	return nil
}

// handleFailedLoginAttempt counts failures inside a LockoutDuration window and
// locks the login once MaxLoginAttempts is reached. Cache errors are logged only.
func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, login string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, login)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("failed to count login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("failed to set login attempt window", zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf(constants.CacheKeyLockout, login)
		if err := s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("failed to lock out login", zap.Error(err))
		}
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, login string) {
	_ = s.cacheRepo.Del(ctx,
		fmt.Sprintf(constants.CacheKeyLoginAttempts, login),
		fmt.Sprintf(constants.CacheKeyLockout, login),
	)
}
