package repositories

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/database/postgresql"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPool *pgxpool.Pool

// TestMain connects to TEST_DATABASE_URL when set and applies the schema.
// Without it the integration tests skip and the unit tests still run.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		ctx := context.Background()
		logger := zap.NewNop()
		if err := postgresql.Migrate(ctx, dsn, logger); err != nil {
			log.Fatalf("apply schema to test database: %v", err)
		}
		pool, err := postgresql.ConnectDB(ctx, dsn, logger)
		if err != nil {
			log.Fatalf("connect to test database: %v", err)
		}
		testPool = pool
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE maintenance_requests, equipment, teams, users`)
	require.NoError(t, err, "truncate tables")
	return testPool
}

func newEquipment(name, serial string) *entities.Equipment {
	now := time.Now().UTC().Truncate(time.Microsecond)
	e := &entities.Equipment{
		ID:                  uuid.NewString(),
		Name:                name,
		SerialNumber:        serial,
		Category:            "CNC",
		Department:          "Production",
		OwnerEmployeeName:   "Dana Reyes",
		PurchaseDate:        "2024-03-01",
		WarrantyExpiry:      "2027-03-01",
		Location:            "Hall B",
		MaintenanceTeamID:   uuid.NewString(),
		DefaultTechnicianID: uuid.NewString(),
	}
	e.CreatedAt, e.UpdatedAt = now, now
	return e
}

func TestEquipmentRepository_Integration_RoundTripAndFilters(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewEquipmentRepository(pool, zap.NewNop())

	lathe := newEquipment("Lathe 3000", "SN-001")
	created, err := repo.CreateEquipment(ctx, lathe)
	require.NoError(t, err)

	found, err := repo.FindEquipment(ctx, lathe.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, "SN-001", found.SerialNumber)
	assert.False(t, found.IsScrapped)
	assert.Nil(t, found.ScrappedAt)

	drill := newEquipment("Drill press", "SN-002")
	drill.Category = "Tools"
	_, err = repo.CreateEquipment(ctx, drill)
	require.NoError(t, err)

	items, err := repo.GetEquipments(ctx, types.EquipmentFilter{Search: "lathe"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lathe.ID, items[0].ID)

	items, err = repo.GetEquipments(ctx, types.EquipmentFilter{Category: "Tools"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, drill.ID, items[0].ID)

	_, err = repo.FindEquipment(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentRepository_Integration_ScrapIsIdempotent(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewEquipmentRepository(pool, zap.NewNop())

	e := newEquipment("Press", "SN-010")
	_, err := repo.CreateEquipment(ctx, e)
	require.NoError(t, err)

	reason := "cracked frame"
	first, err := repo.ScrapEquipment(ctx, e.ID, "2026-01-01T00:00:00Z", &reason)
	require.NoError(t, err)
	assert.True(t, first.IsScrapped)
	require.NotNil(t, first.ScrappedReason)
	assert.Equal(t, reason, *first.ScrappedReason)

	other := "second reason"
	second, err := repo.ScrapEquipment(ctx, e.ID, "2026-02-01T00:00:00Z", &other)
	require.NoError(t, err)
	assert.Equal(t, *first.ScrappedAt, *second.ScrappedAt)
	assert.Equal(t, reason, *second.ScrappedReason)

	active, err := repo.GetEquipments(ctx, types.EquipmentFilter{Status: "active"})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUserRepository_Integration_DuplicateEmail(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool, zap.NewNop())

	now := time.Now().UTC()
	u := &entities.User{ID: uuid.NewString(), Name: "Ann", Email: "ann@gearguard.dev", Role: constants.RoleTechnician, PasswordHash: "x"}
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := repo.CreateUser(ctx, u)
	require.NoError(t, err)

	dup := *u
	dup.ID = uuid.NewString()
	_, err = repo.CreateUser(ctx, &dup)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	byEmail, err := repo.FindByEmail(ctx, "ann@gearguard.dev")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTechnician, byEmail.Role)
}

func TestTeamRepository_Integration_MemberIDs(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(pool, zap.NewNop())

	now := time.Now().UTC()
	team := &entities.Team{ID: uuid.NewString(), Name: "Mechanics", MemberIDs: []string{"u-2", "u-1"}}
	team.CreatedAt, team.UpdatedAt = now, now
	_, err := repo.CreateTeam(ctx, team)
	require.NoError(t, err)

	found, err := repo.FindTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u-2", "u-1"}, found.MemberIDs)

	require.NoError(t, repo.DeleteTeam(ctx, team.ID))
	assert.ErrorIs(t, repo.DeleteTeam(ctx, team.ID), apperrors.ErrNotFound)
}

func TestTxManager_Integration_RollsBackBothWrites(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	equipmentRepo := NewEquipmentRepository(pool, zap.NewNop())
	requestRepo := NewRequestRepository(pool, zap.NewNop())
	txManager := NewTxManager(pool)

	e := newEquipment("Mill", "SN-020")
	_, err := equipmentRepo.CreateEquipment(ctx, e)
	require.NoError(t, err)

	now := time.Now().UTC()
	req := &entities.MaintenanceRequest{
		ID: uuid.NewString(), Type: constants.RequestTypeCorrective, Subject: "Broken spindle",
		Description: "Spindle seized", EquipmentID: e.ID, EquipmentCategory: e.Category,
		MaintenanceTeamID: e.MaintenanceTeamID, CreatedByID: uuid.NewString(), Stage: constants.StageNew,
	}
	req.CreatedAt, req.UpdatedAt = now, now
	_, err = requestRepo.CreateRequest(ctx, req)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req.Stage = constants.StageScrap
		if _, err := requestRepo.UpdateRequestInTx(ctx, tx, req); err != nil {
			return err
		}
		reason := "Scrap request: Broken spindle"
		if _, err := equipmentRepo.ScrapEquipmentInTx(ctx, tx, e.ID, now.Format(time.RFC3339), &reason); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	storedReq, err := requestRepo.FindRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StageNew, storedReq.Stage)

	storedEq, err := equipmentRepo.FindEquipment(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, storedEq.IsScrapped)
}
