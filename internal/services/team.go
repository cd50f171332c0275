package services

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]dto.TeamOutDTO, error)
	FindTeam(ctx context.Context, id string) (*dto.TeamOutDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamOutDTO, error)
	UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO, rawRequestBody []byte) (*dto.TeamOutDTO, error)
	DeleteTeam(ctx context.Context, id string) error
}

type TeamService struct {
	*BaseService
	teamRepo repositories.TeamRepositoryInterface
	logger   *zap.Logger
}

func NewTeamService(teamRepo repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{
		BaseService: NewBaseService(logger),
		teamRepo:    teamRepo,
		logger:      logger,
	}
}

func teamNotFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("Team not found")
	}
	return err
}

func (s *TeamService) GetTeams(ctx context.Context) ([]dto.TeamOutDTO, error) {
	teams, err := s.teamRepo.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewTeamOutList(teams), nil
}

func (s *TeamService) FindTeam(ctx context.Context, id string) (*dto.TeamOutDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, teamNotFound(err)
	}
	out := dto.NewTeamOut(team)
	return &out, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.TeamsCreate); err != nil {
		return nil, err
	}

	if err := requireText("name", payload.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	team := &entities.Team{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		MemberIDs: payload.MemberIDs,
	}
	team.CreatedAt, team.UpdatedAt = now, now

	created, err := s.teamRepo.CreateTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	out := dto.NewTeamOut(created)
	return &out, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, payload dto.UpdateTeamDTO, rawRequestBody []byte) (*dto.TeamOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.TeamsUpdate); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, teamNotFound(err)
	}

	applied, err := utils.ApplyPatch(team, &payload, rawRequestBody)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON body")
	}
	if err := requirePatchedText(applied, "name", team.Name); err != nil {
		return nil, err
	}
	team.UpdatedAt = time.Now().UTC()

	updated, err := s.teamRepo.UpdateTeam(ctx, team)
	if err != nil {
		return nil, teamNotFound(err)
	}
	out := dto.NewTeamOut(updated)
	return &out, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	a, err := s.CheckPermission(ctx, authz.TeamsDelete)
	if err != nil {
		return err
	}
	if err := s.teamRepo.DeleteTeam(ctx, id); err != nil {
		return teamNotFound(err)
	}
	s.logger.Info("team deleted", zap.String("id", id), zap.String("by", a.ID))
	return nil
}
