package dto

import (
	"gearguard/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Name                string `json:"name" validate:"required,notblank,max=120"`
	SerialNumber        string `json:"serialNumber" validate:"required,notblank,max=80"`
	Category            string `json:"category" validate:"required,max=80"`
	Department          string `json:"department" validate:"required,max=80"`
	OwnerEmployeeName   string `json:"ownerEmployeeName" validate:"required,max=120"`
	PurchaseDate        string `json:"purchaseDate" validate:"required,datetime=2006-01-02"`
	WarrantyExpiry      string `json:"warrantyExpiry" validate:"required,datetime=2006-01-02"`
	Location            string `json:"location" validate:"required,max=200"`
	MaintenanceTeamID   string `json:"maintenanceTeamId" validate:"required,max=36"`
	DefaultTechnicianID string `json:"defaultTechnicianId" validate:"required,max=36"`
	IsScrapped          bool   `json:"isScrapped"`
}

// UpdateEquipmentDTO applies only the fields present in the body.
// isScrapped=true scraps the item with scrappedReason and ignores other fields.
type UpdateEquipmentDTO struct {
	Name                *string     `json:"name" validate:"omitempty,notblank,max=120"`
	SerialNumber        *string     `json:"serialNumber" validate:"omitempty,notblank,max=80"`
	Category            *string     `json:"category" validate:"omitempty,max=80"`
	Department          *string     `json:"department" validate:"omitempty,max=80"`
	OwnerEmployeeName   *string     `json:"ownerEmployeeName" validate:"omitempty,max=120"`
	PurchaseDate        *string     `json:"purchaseDate" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry      *string     `json:"warrantyExpiry" validate:"omitempty,datetime=2006-01-02"`
	Location            *string     `json:"location" validate:"omitempty,max=200"`
	MaintenanceTeamID   *string     `json:"maintenanceTeamId" validate:"omitempty,max=36"`
	DefaultTechnicianID *string     `json:"defaultTechnicianId" validate:"omitempty,max=36"`
	IsScrapped          *bool       `json:"isScrapped"`
	ScrappedReason      null.String `json:"scrappedReason" validate:"omitempty,max=300"`
}

type EquipmentOutDTO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	SerialNumber        string  `json:"serialNumber"`
	Category            string  `json:"category"`
	Department          string  `json:"department"`
	OwnerEmployeeName   string  `json:"ownerEmployeeName"`
	PurchaseDate        string  `json:"purchaseDate"`
	WarrantyExpiry      string  `json:"warrantyExpiry"`
	Location            string  `json:"location"`
	MaintenanceTeamID   string  `json:"maintenanceTeamId"`
	DefaultTechnicianID string  `json:"defaultTechnicianId"`
	IsScrapped          bool    `json:"isScrapped"`
	ScrappedAt          *string `json:"scrappedAt"`
	ScrappedReason      *string `json:"scrappedReason"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

func NewEquipmentOut(e *entities.Equipment) EquipmentOutDTO {
	return EquipmentOutDTO{
		ID:                  e.ID,
		Name:                e.Name,
		SerialNumber:        e.SerialNumber,
		Category:            e.Category,
		Department:          e.Department,
		OwnerEmployeeName:   e.OwnerEmployeeName,
		PurchaseDate:        e.PurchaseDate,
		WarrantyExpiry:      e.WarrantyExpiry,
		Location:            e.Location,
		MaintenanceTeamID:   e.MaintenanceTeamID,
		DefaultTechnicianID: e.DefaultTechnicianID,
		IsScrapped:          e.IsScrapped,
		ScrappedAt:          e.ScrappedAt,
		ScrappedReason:      e.ScrappedReason,
		CreatedAt:           formatTimestamp(e.CreatedAt),
		UpdatedAt:           formatTimestamp(e.UpdatedAt),
	}
}

func NewEquipmentOutList(items []entities.Equipment) []EquipmentOutDTO {
	out := make([]EquipmentOutDTO, 0, len(items))
	for i := range items {
		out = append(out, NewEquipmentOut(&items[i]))
	}
	return out
}
