package dto

import (
	"gearguard/internal/entities"

	"github.com/aarondl/null/v8"
)

// CreateRequestDTO: equipmentCategory and maintenanceTeamId default to the
// linked equipment, createdById defaults to the caller.
type CreateRequestDTO struct {
	Type              string  `json:"type" validate:"required,request_type"`
	Subject           string  `json:"subject" validate:"required,notblank,max=200"`
	Description       string  `json:"description" validate:"required,notblank,max=1200"`
	EquipmentID       string  `json:"equipmentId" validate:"required,max=36"`
	EquipmentCategory *string `json:"equipmentCategory" validate:"omitempty,max=80"`
	MaintenanceTeamID *string `json:"maintenanceTeamId" validate:"omitempty,max=36"`
	ScheduledDate     *string `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	AssignedToID      *string `json:"assignedToId" validate:"omitempty,max=36"`
	CreatedByID       *string `json:"createdById" validate:"omitempty,max=36"`
}

// UpdateRequestDTO applies only the fields present in the body; null clears
// the nullable ones.
type UpdateRequestDTO struct {
	Type          *string      `json:"type" validate:"omitempty,request_type"`
	Subject       *string      `json:"subject" validate:"omitempty,notblank,max=200"`
	Description   *string      `json:"description" validate:"omitempty,notblank,max=1200"`
	ScheduledDate null.String  `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	DurationHours null.Float64 `json:"durationHours" validate:"omitempty,gte=0"`
	AssignedToID  null.String  `json:"assignedToId" validate:"omitempty,max=36"`
	Stage         *string      `json:"stage" validate:"omitempty,request_stage"`
}

type RequestOutDTO struct {
	ID                string   `json:"id"`
	Type              string   `json:"type"`
	Subject           string   `json:"subject"`
	Description       string   `json:"description"`
	EquipmentID       string   `json:"equipmentId"`
	EquipmentCategory string   `json:"equipmentCategory"`
	MaintenanceTeamID string   `json:"maintenanceTeamId"`
	ScheduledDate     *string  `json:"scheduledDate"`
	DurationHours     *float64 `json:"durationHours"`
	AssignedToID      *string  `json:"assignedToId"`
	CreatedByID       string   `json:"createdById"`
	Stage             string   `json:"stage"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func NewRequestOut(r *entities.MaintenanceRequest) RequestOutDTO {
	return RequestOutDTO{
		ID:                r.ID,
		Type:              r.Type.String(),
		Subject:           r.Subject,
		Description:       r.Description,
		EquipmentID:       r.EquipmentID,
		EquipmentCategory: r.EquipmentCategory,
		MaintenanceTeamID: r.MaintenanceTeamID,
		ScheduledDate:     r.ScheduledDate,
		DurationHours:     r.DurationHours,
		AssignedToID:      r.AssignedToID,
		CreatedByID:       r.CreatedByID,
		Stage:             r.Stage.String(),
		CreatedAt:         formatTimestamp(r.CreatedAt),
		UpdatedAt:         formatTimestamp(r.UpdatedAt),
	}
}

func NewRequestOutList(items []entities.MaintenanceRequest) []RequestOutDTO {
	out := make([]RequestOutDTO, 0, len(items))
	for i := range items {
		out = append(out, NewRequestOut(&items[i]))
	}
	return out
}
