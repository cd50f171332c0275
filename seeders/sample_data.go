package seeders

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SampleRepositories are the stores SeedSampleData writes through.
type SampleRepositories struct {
	Teams     repositories.TeamRepositoryInterface
	Equipment repositories.EquipmentRepositoryInterface
	Requests  repositories.RequestRepositoryInterface
}

// SeedSampleData fills an empty inventory with a few teams, equipment items and
// requests. It does nothing when any equipment already exists.
func SeedSampleData(ctx context.Context, repos SampleRepositories, createdByID string, logger *zap.Logger) error {
	existing, err := repos.Equipment.GetEquipments(ctx, types.EquipmentFilter{Status: string(constants.EquipmentStatusAll)})
	if err != nil {
		return fmt.Errorf("check existing equipment: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("sample data skipped: equipment already present", zap.Int("count", len(existing)))
		return nil
	}

	now := time.Now().UTC()
	teamIDs := make([]string, 0, len(sampleTeams))
	for _, name := range sampleTeams {
		team := &entities.Team{ID: uuid.NewString(), Name: name, MemberIDs: []string{createdByID}}
		team.CreatedAt, team.UpdatedAt = now, now
		if _, err := repos.Teams.CreateTeam(ctx, team); err != nil {
			return fmt.Errorf("create team %q: %w", name, err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	equipment := make([]*entities.Equipment, 0, len(sampleEquipments))
	for i, s := range sampleEquipments {
		e := &entities.Equipment{
			ID:                  uuid.NewString(),
			Name:                s.Name,
			SerialNumber:        s.Serial,
			Category:            s.Category,
			Department:          s.Department,
			OwnerEmployeeName:   s.Owner,
			PurchaseDate:        s.PurchaseDate,
			WarrantyExpiry:      s.WarrantyExpiry,
			Location:            s.Location,
			MaintenanceTeamID:   teamIDs[i%len(teamIDs)],
			DefaultTechnicianID: createdByID,
		}
		e.CreatedAt, e.UpdatedAt = now, now
		if _, err := repos.Equipment.CreateEquipment(ctx, e); err != nil {
			return fmt.Errorf("create equipment %q: %w", s.Name, err)
		}
		equipment = append(equipment, e)
	}

	for _, s := range sampleRequests {
		e := equipment[s.Equipment]
		req := &entities.MaintenanceRequest{
			ID:                uuid.NewString(),
			Type:              s.Type,
			Subject:           s.Subject,
			Description:       s.Description,
			EquipmentID:       e.ID,
			EquipmentCategory: e.Category,
			MaintenanceTeamID: e.MaintenanceTeamID,
			CreatedByID:       createdByID,
			Stage:             s.Stage,
		}
		if s.ScheduledDate != "" {
			date := s.ScheduledDate
			req.ScheduledDate = &date
		}
		req.CreatedAt, req.UpdatedAt = now, now
		if _, err := repos.Requests.CreateRequest(ctx, req); err != nil {
			return fmt.Errorf("create request %q: %w", s.Subject, err)
		}
	}

	logger.Info("sample data seeded",
		zap.Int("teams", len(teamIDs)),
		zap.Int("equipment", len(equipment)),
		zap.Int("requests", len(sampleRequests)),
	)
	return nil
}
