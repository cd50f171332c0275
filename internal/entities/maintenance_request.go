package entities

import (
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type MaintenanceRequest struct {
	ID                string                 `db:"id"`
	Type              constants.RequestType  `db:"type"`
	Subject           string                 `db:"subject"`
	Description       string                 `db:"description"`
	EquipmentID       string                 `db:"equipment_id"`
	EquipmentCategory string                 `db:"equipment_category"`
	MaintenanceTeamID string                 `db:"maintenance_team_id"`
	ScheduledDate     *string                `db:"scheduled_date"`
	DurationHours     *float64               `db:"duration_hours"`
	AssignedToID      *string                `db:"assigned_to_id"`
	CreatedByID       string                 `db:"created_by_id"`
	Stage             constants.RequestStage `db:"stage"`

	types.BaseEntity
}
