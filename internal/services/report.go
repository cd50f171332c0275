package services

import (
	"context"
	"time"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

// reportRanges maps the accepted range values to their look-back window.
// A zero window means no lower bound.
var reportRanges = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
	"all": 0,
}

const defaultReportRange = "30d"

type ReportServiceInterface interface {
	Summary(ctx context.Context, rangeKey string) (*dto.ReportSummaryDTO, error)
	// ExportRequests returns the filtered request list for spreadsheet export.
	ExportRequests(ctx context.Context, filter types.RequestFilter) ([]dto.RequestOutDTO, error)
}

type ReportService struct {
	*BaseService
	reportRepo  repositories.ReportRepositoryInterface
	requestRepo repositories.RequestRepositoryInterface
	now         func() time.Time
	logger      *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		BaseService: NewBaseService(logger),
		reportRepo:  reportRepo,
		requestRepo: requestRepo,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *ReportService) Summary(ctx context.Context, rangeKey string) (*dto.ReportSummaryDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.ReportsView); err != nil {
		return nil, err
	}
	if rangeKey == "" {
		rangeKey = defaultReportRange
	}
	window, ok := reportRanges[rangeKey]
	if !ok {
		return nil, apperrors.NewValidationError("range must be one of 7d, 30d, 90d, all")
	}

	now := s.now().UTC()
	var since *time.Time
	if window > 0 {
		from := now.Add(-window)
		since = &from
	}

	equipment, err := s.reportRepo.EquipmentTotals(ctx)
	if err != nil {
		return nil, err
	}

	byStage, err := s.reportRepo.CountRequestsBy(ctx, repositories.GroupByStage, since)
	if err != nil {
		return nil, err
	}
	byType, err := s.reportRepo.CountRequestsBy(ctx, repositories.GroupByType, since)
	if err != nil {
		return nil, err
	}
	byTeam, err := s.reportRepo.CountRequestsBy(ctx, repositories.GroupByTeam, since)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reportRepo.CountRequestsBy(ctx, repositories.GroupByCategory, since)
	if err != nil {
		return nil, err
	}
	overdue, err := s.reportRepo.CountOverduePreventive(ctx, now.Format(constants.DateLayout), since)
	if err != nil {
		return nil, err
	}
	teamNames, err := s.reportRepo.TeamNames(ctx)
	if err != nil {
		return nil, err
	}

	requests := dto.RequestTotalsDTO{
		Overdue:    overdue,
		ByStage:    make(map[string]int64, len(constants.RequestStages)),
		ByType:     make(map[string]int64, len(constants.RequestTypes)),
		ByTeam:     make([]dto.TeamCountDTO, 0, len(byTeam)),
		ByCategory: make([]dto.CategoryCountDTO, 0, len(byCategory)),
	}
	for _, stage := range constants.RequestStages {
		requests.ByStage[stage.String()] = 0
	}
	for _, t := range constants.RequestTypes {
		requests.ByType[t.String()] = 0
	}
	for _, c := range byStage {
		requests.ByStage[c.Key] = c.Count
		requests.Total += c.Count
		if constants.RequestStage(c.Key).IsOpen() {
			requests.Open += c.Count
		}
	}
	for _, c := range byType {
		requests.ByType[c.Key] = c.Count
	}
	for _, c := range byTeam {
		requests.ByTeam = append(requests.ByTeam, dto.TeamCountDTO{TeamID: c.Key, TeamName: teamNames[c.Key], Count: c.Count})
	}
	for _, c := range byCategory {
		requests.ByCategory = append(requests.ByCategory, dto.CategoryCountDTO{Category: c.Key, Count: c.Count})
	}

	return &dto.ReportSummaryDTO{
		Range:       rangeKey,
		GeneratedAt: now.Format(time.RFC3339),
		Equipment:   equipmentTotals(equipment),
		Requests:    requests,
	}, nil
}

func equipmentTotals(t entities.EquipmentTotals) dto.EquipmentTotalsDTO {
	return dto.EquipmentTotalsDTO{Total: t.Total, Active: t.Active, Scrapped: t.Scrapped}
}

func (s *ReportService) ExportRequests(ctx context.Context, filter types.RequestFilter) ([]dto.RequestOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.ReportsView); err != nil {
		return nil, err
	}
	items, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("exporting requests", zap.Int("count", len(items)))
	return dto.NewRequestOutList(items), nil
}
