package entities

import "gearguard/pkg/types"

type Equipment struct {
	ID                  string `db:"id"`
	Name                string `db:"name"`
	SerialNumber        string `db:"serial_number"`
	Category            string `db:"category"`
	Department          string `db:"department"`
	OwnerEmployeeName   string `db:"owner_employee_name"`
	PurchaseDate        string `db:"purchase_date"`
	WarrantyExpiry      string `db:"warranty_expiry"`
	Location            string `db:"location"`
	MaintenanceTeamID   string `db:"maintenance_team_id"`
	DefaultTechnicianID string `db:"default_technician_id"`

	IsScrapped     bool    `db:"is_scrapped"`
	ScrappedAt     *string `db:"scrapped_at"`
	ScrappedReason *string `db:"scrapped_reason"`

	types.BaseEntity
}
