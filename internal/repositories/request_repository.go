package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	db "gearguard/internal/infrastructure/bd"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	requestTable        = "maintenance_requests"
	requestSelectFields = "id, type, subject, description, equipment_id, equipment_category, " +
		"maintenance_team_id, scheduled_date, duration_hours, assigned_to_id, created_by_id, stage, " +
		"created_at, updated_at"
)

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error)
	FindRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateRequest(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	DeleteRequest(ctx context.Context, id string) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var req entities.MaintenanceRequest
	var reqType, stage string
	err := row.Scan(
		&req.ID, &reqType, &req.Subject, &req.Description, &req.EquipmentID, &req.EquipmentCategory,
		&req.MaintenanceTeamID, &req.ScheduledDate, &req.DurationHours, &req.AssignedToID, &req.CreatedByID, &stage,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	req.Type = constants.RequestType(reqType)
	req.Stage = constants.RequestStage(stage)
	return &req, nil
}

// requestListQuery builds the filtered listing shared by the API and the xlsx export.
func requestListQuery(filter types.RequestFilter) sq.SelectBuilder {
	builder := sq.Select(requestSelectFields).From(requestTable).PlaceholderFormat(sq.Dollar)

	exact := map[string]string{
		"equipment_id": filter.EquipmentID,
		"stage":        filter.Stage,
	}
	if filter.Type != constants.FilterAll {
		exact["type"] = filter.Type
	}
	if filter.TeamID != constants.FilterAll {
		exact["maintenance_team_id"] = filter.TeamID
	}
	builder = db.ApplyExact(builder, exact)
	builder = db.ApplySearch(builder, filter.Search, "subject", "description")
	return builder.OrderBy("updated_at DESC")
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	query, args, err := requestListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listing requests", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	items := make([]entities.MaintenanceRequest, 0)
	for rows.Next() {
		item, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *RequestRepository) FindRequest(ctx context.Context, id string) (*entities.MaintenanceRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", requestSelectFields, requestTable)
	return scanRequest(r.storage.QueryRow(ctx, query, id))
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	query, args, err := sq.Insert(requestTable).
		Columns(
			"id", "type", "subject", "description", "equipment_id", "equipment_category",
			"maintenance_team_id", "scheduled_date", "duration_hours", "assigned_to_id", "created_by_id", "stage",
			"created_at", "updated_at",
		).
		Values(
			req.ID, string(req.Type), req.Subject, req.Description, req.EquipmentID, req.EquipmentCategory,
			req.MaintenanceTeamID, req.ScheduledDate, req.DurationHours, req.AssignedToID, req.CreatedByID, string(req.Stage),
			req.CreatedAt, req.UpdatedAt,
		).
		Suffix("RETURNING " + requestSelectFields).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequest(r.storage.QueryRow(ctx, query, args...))
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return updateRequest(ctx, r.storage, req)
}

func (r *RequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return updateRequest(ctx, tx, req)
}

func updateRequest(ctx context.Context, q querier, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	query, args, err := sq.Update(requestTable).
		PlaceholderFormat(sq.Dollar).
		SetMap(map[string]interface{}{
			"type":           string(req.Type),
			"subject":        req.Subject,
			"description":    req.Description,
			"scheduled_date": req.ScheduledDate,
			"duration_hours": req.DurationHours,
			"assigned_to_id": req.AssignedToID,
			"stage":          string(req.Stage),
			"updated_at":     req.UpdatedAt,
		}).
		Where(sq.Eq{"id": req.ID}).
		Suffix("RETURNING " + requestSelectFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequest(q.QueryRow(ctx, query, args...))
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id string) error {
	return deleteByID(ctx, r.storage, requestTable, id)
}
