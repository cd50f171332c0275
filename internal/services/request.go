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
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.RequestFilter) ([]dto.RequestOutDTO, error)
	FindRequest(ctx context.Context, id string) (*dto.RequestOutDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestOutDTO, error)
	UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO, rawRequestBody []byte) (*dto.RequestOutDTO, error)
	DeleteRequest(ctx context.Context, id string) error
}

type RequestService struct {
	*BaseService
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	txManager     repositories.TxManagerInterface
	now           func() time.Time
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		BaseService:   NewBaseService(logger),
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		txManager:     txManager,
		now:           time.Now,
		logger:        logger,
	}
}

func requestNotFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("Request not found")
	}
	return err
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.RequestFilter) ([]dto.RequestOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.RequestsView); err != nil {
		return nil, err
	}
	if filter.Stage != "" && !constants.RequestStage(filter.Stage).IsValid() {
		return nil, apperrors.NewValidationError("unknown stage %q", filter.Stage)
	}
	if filter.Type != "" && filter.Type != constants.FilterAll && !constants.RequestType(filter.Type).IsValid() {
		return nil, apperrors.NewValidationError("unknown type %q", filter.Type)
	}
	items, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewRequestOutList(items), nil
}

func (s *RequestService) FindRequest(ctx context.Context, id string) (*dto.RequestOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.RequestsView); err != nil {
		return nil, err
	}
	req, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, requestNotFound(err)
	}
	out := dto.NewRequestOut(req)
	return &out, nil
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestOutDTO, error) {
	a, err := s.CheckPermission(ctx, authz.RequestsCreate)
	if err != nil {
		return nil, err
	}

	reqType := constants.RequestType(payload.Type)
	if !reqType.IsValid() {
		return nil, apperrors.NewValidationError("unknown type %q", payload.Type)
	}
	if reqType == constants.RequestTypePreventive && isBlank(payload.ScheduledDate) {
		return nil, apperrors.NewValidationError("scheduledDate is required for preventive requests")
	}
	if err := requireText("subject", payload.Subject); err != nil {
		return nil, err
	}
	if err := requireText("description", payload.Description); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	req := &entities.MaintenanceRequest{
		ID:            uuid.NewString(),
		Type:          reqType,
		Subject:       payload.Subject,
		Description:   payload.Description,
		EquipmentID:   payload.EquipmentID,
		ScheduledDate: nonBlank(payload.ScheduledDate),
		AssignedToID:  nonBlank(payload.AssignedToID),
		CreatedByID:   a.ID,
		Stage:         constants.StageNew,
	}
	if id := nonBlank(payload.CreatedByID); id != nil {
		req.CreatedByID = *id
	}

	category, teamID := nonBlank(payload.EquipmentCategory), nonBlank(payload.MaintenanceTeamID)
	if category == nil || teamID == nil {
		equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
		if err != nil {
			return nil, equipmentNotFound(err)
		}
		if category == nil {
			category = &equipment.Category
		}
		if teamID == nil {
			teamID = &equipment.MaintenanceTeamID
		}
	}
	req.EquipmentCategory, req.MaintenanceTeamID = *category, *teamID
	req.CreatedAt, req.UpdatedAt = now, now

	created, err := s.requestRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("request created",
		zap.String("id", created.ID),
		zap.String("type", created.Type.String()),
		zap.String("equipmentID", created.EquipmentID),
	)
	out := dto.NewRequestOut(created)
	return &out, nil
}

// UpdateRequest applies the sent fields after every stage guard has passed.
// Moving to the scrap stage also scraps the linked equipment in the same
// transaction.
func (s *RequestService) UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO, rawRequestBody []byte) (*dto.RequestOutDTO, error) {
	a, err := s.CheckPermission(ctx, authz.RequestsUpdate)
	if err != nil {
		return nil, err
	}

	current, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, requestNotFound(err)
	}
	storedSubject := current.Subject

	updated := *current
	applied, err := utils.ApplyPatch(&updated, &payload, rawRequestBody)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON body")
	}

	var targetStage constants.RequestStage
	if payload.Stage != nil {
		targetStage = constants.RequestStage(*payload.Stage)
		if !targetStage.IsValid() {
			return nil, apperrors.NewValidationError("unknown stage %q", *payload.Stage)
		}
	}
	if !updated.Type.IsValid() {
		return nil, apperrors.NewValidationError("unknown type %q", updated.Type)
	}
	if updated.Type == constants.RequestTypePreventive && isBlank(updated.ScheduledDate) {
		return nil, apperrors.NewValidationError("scheduledDate is required for preventive requests")
	}
	if err := requirePatchedText(applied, "subject", updated.Subject); err != nil {
		return nil, err
	}
	if err := requirePatchedText(applied, "description", updated.Description); err != nil {
		return nil, err
	}
	// Evaluated on the resulting row, not only on stage changes.
	if updated.Stage == constants.StageRepaired && (updated.DurationHours == nil || *updated.DurationHours <= 0) {
		return nil, apperrors.NewValidationError("durationHours is required to mark as repaired")
	}

	if targetStage == constants.StageScrap {
		if err := authz.Authorize(a.Role, authz.RequestsScrap); err != nil {
			s.logger.Warn("scrap via request denied", zap.String("requestID", id), zap.String("userID", a.ID))
			return nil, apperrors.NewForbiddenError("Only admin/manager can scrap equipment via request")
		}
	}

	updated.UpdatedAt = s.now().UTC()

	if targetStage != constants.StageScrap {
		saved, err := s.requestRepo.UpdateRequest(ctx, &updated)
		if err != nil {
			return nil, requestNotFound(err)
		}
		out := dto.NewRequestOut(saved)
		return &out, nil
	}

	var saved *entities.MaintenanceRequest
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.scrapLinkedEquipment(ctx, tx, current.EquipmentID, storedSubject); err != nil {
			return err
		}
		var err error
		saved, err = s.requestRepo.UpdateRequestInTx(ctx, tx, &updated)
		return err
	})
	if err != nil {
		return nil, requestNotFound(err)
	}
	out := dto.NewRequestOut(saved)
	return &out, nil
}

// scrapLinkedEquipment scraps the request's equipment when it exists and is
// still active.
func (s *RequestService) scrapLinkedEquipment(ctx context.Context, tx pgx.Tx, equipmentID, subject string) error {
	equipment, err := s.equipmentRepo.FindEquipmentForUpdateInTx(ctx, tx, equipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("scrap request has no equipment to scrap", zap.String("equipmentID", equipmentID))
			return nil
		}
		return err
	}
	if equipment.IsScrapped {
		return nil
	}

	reason := constants.ScrapRequestReasonPrefix + subject
	if _, err := s.equipmentRepo.ScrapEquipmentInTx(ctx, tx, equipmentID, s.now().UTC().Format(time.RFC3339), &reason); err != nil {
		return err
	}
	s.logger.Info("equipment scrapped via request", zap.String("equipmentID", equipmentID))
	return nil
}

func (s *RequestService) DeleteRequest(ctx context.Context, id string) error {
	a, err := s.CheckPermission(ctx, authz.RequestsDelete)
	if err != nil {
		return err
	}
	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		return requestNotFound(err)
	}
	s.logger.Info("request deleted", zap.String("id", id), zap.String("by", a.ID))
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func nonBlank(s *string) *string {
	if isBlank(s) {
		return nil
	}
	return s
}
