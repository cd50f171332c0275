package repositories

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestGrouping is a column requests can be counted by.
type RequestGrouping string

const (
	GroupByStage    RequestGrouping = "stage"
	GroupByType     RequestGrouping = "type"
	GroupByCategory RequestGrouping = "equipment_category"
	GroupByTeam     RequestGrouping = "maintenance_team_id"
)

type ReportRepositoryInterface interface {
	EquipmentTotals(ctx context.Context) (entities.EquipmentTotals, error)
	CountRequestsBy(ctx context.Context, group RequestGrouping, since *time.Time) ([]entities.CountByKey, error)
	CountOverduePreventive(ctx context.Context, today string, since *time.Time) (int64, error)
	TeamNames(ctx context.Context) (map[string]string, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) EquipmentTotals(ctx context.Context) (entities.EquipmentTotals, error) {
	var totals entities.EquipmentTotals
	query := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE NOT is_scrapped),
		COUNT(*) FILTER (WHERE is_scrapped)
		FROM equipment`
	if err := r.db.QueryRow(ctx, query).Scan(&totals.Total, &totals.Active, &totals.Scrapped); err != nil {
		return totals, fmt.Errorf("count equipment: %w", err)
	}
	return totals, nil
}

func (r *reportRepository) CountRequestsBy(ctx context.Context, group RequestGrouping, since *time.Time) ([]entities.CountByKey, error) {
	switch group {
	case GroupByStage, GroupByType, GroupByCategory, GroupByTeam:
	default:
		return nil, fmt.Errorf("unsupported request grouping %q", group)
	}

	col := string(group)
	builder := sq.Select(col+"::text", "COUNT(*)").
		From(requestTable).
		GroupBy(col).
		OrderBy("COUNT(*) DESC", col).
		PlaceholderFormat(sq.Dollar)
	if since != nil {
		builder = builder.Where(sq.GtOrEq{"updated_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count requests by %s: %w", col, err)
	}
	defer rows.Close()

	counts := make([]entities.CountByKey, 0)
	for rows.Next() {
		var c entities.CountByKey
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountOverduePreventive counts open preventive requests scheduled before today.
// Dates are stored as YYYY-MM-DD so string comparison orders them.
func (r *reportRepository) CountOverduePreventive(ctx context.Context, today string, since *time.Time) (int64, error) {
	builder := sq.Select("COUNT(*)").
		From(requestTable).
		Where(sq.Eq{
			"type":  string(constants.RequestTypePreventive),
			"stage": []string{string(constants.StageNew), string(constants.StageInProgress)},
		}).
		Where(sq.NotEq{"scheduled_date": nil}).
		Where(sq.Lt{"scheduled_date": today}).
		PlaceholderFormat(sq.Dollar)
	if since != nil {
		builder = builder.Where(sq.GtOrEq{"updated_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overdue requests: %w", err)
	}
	return count, nil
}

func (r *reportRepository) TeamNames(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, "SELECT id, name FROM teams")
	if err != nil {
		return nil, fmt.Errorf("list team names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
