package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	teamTable        = "teams"
	teamSelectFields = "id, name, member_ids, created_at, updated_at"
)

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error)
	UpdateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var team entities.Team
	err := row.Scan(&team.ID, &team.Name, &team.MemberIDs, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if team.MemberIDs == nil {
		team.MemberIDs = []string{}
	}
	return &team, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC", teamSelectFields, teamTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", teamSelectFields, teamTable)
	return scanTeam(r.storage.QueryRow(ctx, query, id))
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error) {
	query, args, err := sq.Insert(teamTable).
		Columns("id", "name", "member_ids", "created_at", "updated_at").
		Values(team.ID, team.Name, memberIDs(team.MemberIDs), team.CreatedAt, team.UpdatedAt).
		Suffix("RETURNING " + teamSelectFields).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTeam(r.storage.QueryRow(ctx, query, args...))
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error) {
	query, args, err := sq.Update(teamTable).
		PlaceholderFormat(sq.Dollar).
		Set("name", team.Name).
		Set("member_ids", memberIDs(team.MemberIDs)).
		Set("updated_at", team.UpdatedAt).
		Where(sq.Eq{"id": team.ID}).
		Suffix("RETURNING " + teamSelectFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanTeam(r.storage.QueryRow(ctx, query, args...))
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id string) error {
	return deleteByID(ctx, r.storage, teamTable, id)
}

// memberIDs keeps an empty membership stored as [] rather than JSON null.
func memberIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func deleteByID(ctx context.Context, q querier, table, id string) error {
	result, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
