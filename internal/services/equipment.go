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
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]dto.EquipmentOutDTO, error)
	FindEquipment(ctx context.Context, id string) (*dto.EquipmentOutDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentOutDTO, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO, rawRequestBody []byte) (*dto.EquipmentOutDTO, error)
	ScrapEquipment(ctx context.Context, id string, reason string) (*dto.EquipmentOutDTO, error)
	DeleteEquipment(ctx context.Context, id string) error
	// FindPublicEquipment reads an item without a caller; used by the QR scan page.
	FindPublicEquipment(ctx context.Context, id string) (*dto.EquipmentOutDTO, error)
}

type EquipmentService struct {
	*BaseService
	equipmentRepo repositories.EquipmentRepositoryInterface
	lockScrapped  bool
	now           func() time.Time
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	lockScrapped bool,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		BaseService:   NewBaseService(logger),
		equipmentRepo: equipmentRepo,
		lockScrapped:  lockScrapped,
		now:           time.Now,
		logger:        logger,
	}
}

func equipmentNotFound(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError("Equipment not found")
	}
	return err
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.EquipmentFilter) ([]dto.EquipmentOutDTO, error) {
	if filter.Status == "" {
		filter.Status = string(constants.EquipmentStatusAll)
	}
	if !constants.EquipmentStatus(filter.Status).IsValid() {
		return nil, apperrors.NewValidationError("status must be one of active, scrapped, all")
	}
	items, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewEquipmentOutList(items), nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentOutDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, equipmentNotFound(err)
	}
	out := dto.NewEquipmentOut(e)
	return &out, nil
}

func (s *EquipmentService) FindPublicEquipment(ctx context.Context, id string) (*dto.EquipmentOutDTO, error) {
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.EquipmentCreate); err != nil {
		return nil, err
	}

	if err := requireText("name", payload.Name); err != nil {
		return nil, err
	}
	if err := requireText("serialNumber", payload.SerialNumber); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	e := &entities.Equipment{
		ID:                  uuid.NewString(),
		Name:                payload.Name,
		SerialNumber:        payload.SerialNumber,
		Category:            payload.Category,
		Department:          payload.Department,
		OwnerEmployeeName:   payload.OwnerEmployeeName,
		PurchaseDate:        payload.PurchaseDate,
		WarrantyExpiry:      payload.WarrantyExpiry,
		Location:            payload.Location,
		MaintenanceTeamID:   payload.MaintenanceTeamID,
		DefaultTechnicianID: payload.DefaultTechnicianID,
		IsScrapped:          payload.IsScrapped,
	}
	if e.IsScrapped {
		e.ScrappedAt = utils.ToPtr(now.Format(time.RFC3339))
	}
	e.CreatedAt, e.UpdatedAt = now, now

	created, err := s.equipmentRepo.CreateEquipment(ctx, e)
	if err != nil {
		return nil, err
	}
	out := dto.NewEquipmentOut(created)
	return &out, nil
}

// UpdateEquipment applies the sent fields. isScrapped=true routes to the
// scrap operation and ignores everything else in the body.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO, rawRequestBody []byte) (*dto.EquipmentOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.EquipmentUpdate); err != nil {
		return nil, err
	}

	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, equipmentNotFound(err)
	}

	if payload.IsScrapped != nil {
		if *payload.IsScrapped {
			return s.scrap(ctx, current, utils.NullStringPtr(payload.ScrappedReason))
		}
		if current.IsScrapped {
			return nil, apperrors.NewValidationError("scrapped equipment cannot be restored")
		}
	}

	if current.IsScrapped && s.lockScrapped {
		s.logger.Warn("edit rejected on scrapped equipment", zap.String("id", id))
		return nil, apperrors.NewValidationError("equipment %s is scrapped and locked for edits", id)
	}

	applied, err := utils.ApplyPatch(current, &payload, rawRequestBody)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid JSON body")
	}
	if err := requirePatchedText(applied, "name", current.Name); err != nil {
		return nil, err
	}
	if err := requirePatchedText(applied, "serialNumber", current.SerialNumber); err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		out := dto.NewEquipmentOut(current)
		return &out, nil
	}
	current.UpdatedAt = s.now().UTC()

	updated, err := s.equipmentRepo.UpdateEquipment(ctx, current)
	if err != nil {
		return nil, equipmentNotFound(err)
	}
	s.logger.Debug("equipment updated", zap.String("id", id), zap.Strings("fields", applied))
	out := dto.NewEquipmentOut(updated)
	return &out, nil
}

func (s *EquipmentService) ScrapEquipment(ctx context.Context, id string, reason string) (*dto.EquipmentOutDTO, error) {
	if _, err := s.CheckPermission(ctx, authz.EquipmentScrap); err != nil {
		return nil, err
	}
	current, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, equipmentNotFound(err)
	}
	var r *string
	if reason = strings.TrimSpace(reason); reason != "" {
		r = &reason
	}
	return s.scrap(ctx, current, r)
}

func (s *EquipmentService) scrap(ctx context.Context, e *entities.Equipment, reason *string) (*dto.EquipmentOutDTO, error) {
	if e.IsScrapped {
		out := dto.NewEquipmentOut(e)
		return &out, nil
	}
	scrapped, err := s.equipmentRepo.ScrapEquipment(ctx, e.ID, s.now().UTC().Format(time.RFC3339), reason)
	if err != nil {
		return nil, equipmentNotFound(err)
	}
	s.logger.Info("equipment scrapped", zap.String("id", e.ID))
	out := dto.NewEquipmentOut(scrapped)
	return &out, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	a, err := s.CheckPermission(ctx, authz.EquipmentDelete)
	if err != nil {
		return err
	}
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return equipmentNotFound(err)
	}
	s.logger.Info("equipment deleted", zap.String("id", id), zap.String("by", a.ID))
	return nil
}
