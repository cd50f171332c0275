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
	equipmentTable        = "equipment"
	equipmentSelectFields = "id, name, serial_number, category, department, owner_employee_name, " +
		"purchase_date, warranty_expiry, location, maintenance_team_id, default_technician_id, " +
		"is_scrapped, scrapped_at, scrapped_reason, created_at, updated_at"
)

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *entities.Equipment) (*entities.Equipment, error)
	ScrapEquipment(ctx context.Context, id string, scrappedAt string, reason *string) (*entities.Equipment, error)
	ScrapEquipmentInTx(ctx context.Context, tx pgx.Tx, id string, scrappedAt string, reason *string) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Department, &e.OwnerEmployeeName,
		&e.PurchaseDate, &e.WarrantyExpiry, &e.Location, &e.MaintenanceTeamID, &e.DefaultTechnicianID,
		&e.IsScrapped, &e.ScrappedAt, &e.ScrappedReason, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	builder := sq.Select(equipmentSelectFields).From(equipmentTable).PlaceholderFormat(sq.Dollar)
	builder = db.ApplySearch(builder, filter.Search, "name", "serial_number", "owner_employee_name")
	builder = db.ApplyExact(builder, map[string]string{
		"category":   filter.Category,
		"department": filter.Department,
	})
	switch constants.EquipmentStatus(filter.Status) {
	case constants.EquipmentStatusActive:
		builder = builder.Where(sq.Eq{"is_scrapped": false})
	case constants.EquipmentStatusScrapped:
		builder = builder.Where(sq.Eq{"is_scrapped": true})
	}
	builder = builder.OrderBy("created_at DESC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listing equipment", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentSelectFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

// FindEquipmentForUpdateInTx locks the row until tx ends.
func (r *EquipmentRepository) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", equipmentSelectFields, equipmentTable)
	return scanEquipment(tx.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := sq.Insert(equipmentTable).
		Columns(
			"id", "name", "serial_number", "category", "department", "owner_employee_name",
			"purchase_date", "warranty_expiry", "location", "maintenance_team_id", "default_technician_id",
			"is_scrapped", "scrapped_at", "scrapped_reason", "created_at", "updated_at",
		).
		Values(
			e.ID, e.Name, e.SerialNumber, e.Category, e.Department, e.OwnerEmployeeName,
			e.PurchaseDate, e.WarrantyExpiry, e.Location, e.MaintenanceTeamID, e.DefaultTechnicianID,
			e.IsScrapped, e.ScrappedAt, e.ScrappedReason, e.CreatedAt, e.UpdatedAt,
		).
		Suffix("RETURNING " + equipmentSelectFields).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

// UpdateEquipment writes the editable columns. Scrap state is owned by ScrapEquipment.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := sq.Update(equipmentTable).
		PlaceholderFormat(sq.Dollar).
		SetMap(map[string]interface{}{
			"name":                  e.Name,
			"serial_number":         e.SerialNumber,
			"category":              e.Category,
			"department":            e.Department,
			"owner_employee_name":   e.OwnerEmployeeName,
			"purchase_date":         e.PurchaseDate,
			"warranty_expiry":       e.WarrantyExpiry,
			"location":              e.Location,
			"maintenance_team_id":   e.MaintenanceTeamID,
			"default_technician_id": e.DefaultTechnicianID,
			"scrapped_reason":       e.ScrappedReason,
			"updated_at":            e.UpdatedAt,
		}).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING " + equipmentSelectFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) ScrapEquipment(ctx context.Context, id string, scrappedAt string, reason *string) (*entities.Equipment, error) {
	return scrapEquipment(ctx, r.storage, id, scrappedAt, reason)
}

func (r *EquipmentRepository) ScrapEquipmentInTx(ctx context.Context, tx pgx.Tx, id string, scrappedAt string, reason *string) (*entities.Equipment, error) {
	return scrapEquipment(ctx, tx, id, scrappedAt, reason)
}

// scrapEquipment marks an active item scrapped. An already scrapped item is
// returned as stored.
func scrapEquipment(ctx context.Context, q querier, id string, scrappedAt string, reason *string) (*entities.Equipment, error) {
	builder := sq.Update(equipmentTable).
		PlaceholderFormat(sq.Dollar).
		Set("is_scrapped", true).
		Set("scrapped_at", scrappedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_scrapped": false}).
		Suffix("RETURNING " + equipmentSelectFields)
	if reason != nil && *reason != "" {
		builder = builder.Set("scrapped_reason", *reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	scrapped, err := scanEquipment(q.QueryRow(ctx, query, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		current := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentSelectFields, equipmentTable)
		return scanEquipment(q.QueryRow(ctx, current, id))
	}
	return scrapped, err
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	return deleteByID(ctx, r.storage, equipmentTable, id)
}
