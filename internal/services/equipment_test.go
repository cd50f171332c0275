package services

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEquipmentFixture(lockScrapped bool) (*EquipmentService, *fakeEquipmentRepo) {
	repo := newFakeEquipmentRepo()
	svc := NewEquipmentService(repo, lockScrapped, zap.NewNop()).(*EquipmentService)
	svc.now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validEquipmentPayload() dto.CreateEquipmentDTO {
	return dto.CreateEquipmentDTO{
		Name: "Lathe 3000", SerialNumber: "SN-001", Category: "CNC", Department: "Production",
		OwnerEmployeeName: "Dana Reyes", PurchaseDate: "2024-03-01", WarrantyExpiry: "2027-03-01",
		Location: "Hall B", MaintenanceTeamID: "team-1", DefaultTechnicianID: "u-7",
	}
}

func updateEquipment(t *testing.T, svc *EquipmentService, role constants.Role, id, body string) (*dto.EquipmentOutDTO, error) {
	t.Helper()
	var payload dto.UpdateEquipmentDTO
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return svc.UpdateEquipment(asActor(role), id, payload, []byte(body))
}

func TestEquipmentService_CreateThenGetRoundTrips(t *testing.T) {
	svc, _ := newEquipmentFixture(false)

	created, err := svc.CreateEquipment(asActor(constants.RoleManager), validEquipmentPayload())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsScrapped)
	assert.Nil(t, created.ScrappedAt)
	assert.Equal(t, "2026-02-10T12:00:00Z", created.CreatedAt)

	found, err := svc.FindEquipment(asActor(constants.RoleRequester), created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)
}

func TestEquipmentService_CreateRequiresManager(t *testing.T) {
	svc, repo := newEquipmentFixture(false)
	_, err := svc.CreateEquipment(asActor(constants.RoleTechnician), validEquipmentPayload())
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
	assert.Empty(t, repo.items)
}

func TestEquipmentService_CreateScrappedStampsTime(t *testing.T) {
	svc, _ := newEquipmentFixture(false)
	payload := validEquipmentPayload()
	payload.IsScrapped = true

	created, err := svc.CreateEquipment(asActor(constants.RoleAdmin), payload)
	require.NoError(t, err)
	assert.True(t, created.IsScrapped)
	assert.Equal(t, "2026-02-10T12:00:00Z", utils.SafeDeref(created.ScrappedAt))
}

func TestEquipmentService_UpdateNameLeavesOtherFields(t *testing.T) {
	svc, _ := newEquipmentFixture(false)
	created, err := svc.CreateEquipment(asActor(constants.RoleManager), validEquipmentPayload())
	require.NoError(t, err)

	updated, err := updateEquipment(t, svc, constants.RoleManager, created.ID, `{"name":"Lathe 4000"}`)
	require.NoError(t, err)

	want := *created
	want.Name = "Lathe 4000"
	want.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, want, *updated)
}

func TestEquipmentService_UpdateWithIsScrappedScraps(t *testing.T) {
	svc, repo := newEquipmentFixture(false)
	created, err := svc.CreateEquipment(asActor(constants.RoleManager), validEquipmentPayload())
	require.NoError(t, err)

	out, err := updateEquipment(t, svc, constants.RoleManager, created.ID,
		`{"isScrapped":true,"scrappedReason":"cracked bed","name":"ignored"}`)
	require.NoError(t, err)
	assert.True(t, out.IsScrapped)
	assert.Equal(t, "cracked bed", utils.SafeDeref(out.ScrappedReason))
	assert.Equal(t, "Lathe 3000", out.Name)
	assert.Equal(t, 1, repo.scrapCalls)

	_, err = updateEquipment(t, svc, constants.RoleManager, created.ID, `{"isScrapped":false}`)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
}

func TestEquipmentService_ScrapIsIdempotent(t *testing.T) {
	svc, repo := newEquipmentFixture(false)
	repo.items["eq-1"] = entities.Equipment{ID: "eq-1", Name: "Press"}

	first, err := svc.ScrapEquipment(asActor(constants.RoleManager), "eq-1", "worn out")
	require.NoError(t, err)
	assert.True(t, first.IsScrapped)

	svc.now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
	second, err := svc.ScrapEquipment(asActor(constants.RoleManager), "eq-1", "other")
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, repo.scrapCalls)

	_, err = svc.ScrapEquipment(asActor(constants.RoleTechnician), "eq-1", "")
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
}

func TestEquipmentService_LockScrappedRejectsEdits(t *testing.T) {
	scrappedAt := "2026-01-01T00:00:00Z"
	for _, lock := range []bool{false, true} {
		svc, repo := newEquipmentFixture(lock)
		repo.items["eq-1"] = entities.Equipment{ID: "eq-1", Name: "Press", IsScrapped: true, ScrappedAt: &scrappedAt}

		out, err := updateEquipment(t, svc, constants.RoleAdmin, "eq-1", `{"location":"Yard"}`)
		if lock {
			assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, "Yard", out.Location)
		assert.True(t, out.IsScrapped)
	}
}

func TestEquipmentService_ListStatus(t *testing.T) {
	svc, repo := newEquipmentFixture(false)

	_, err := svc.GetEquipments(asActor(constants.RoleRequester), types.EquipmentFilter{Status: "broken"})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	_, err = svc.GetEquipments(asActor(constants.RoleRequester), types.EquipmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, "all", repo.lastFilter.Status)
}

func TestEquipmentService_DeleteAdminOnly(t *testing.T) {
	svc, repo := newEquipmentFixture(false)
	repo.items["eq-1"] = entities.Equipment{ID: "eq-1"}

	err := svc.DeleteEquipment(asActor(constants.RoleManager), "eq-1")
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))

	require.NoError(t, svc.DeleteEquipment(asActor(constants.RoleAdmin), "eq-1"))
	err = svc.DeleteEquipment(asActor(constants.RoleAdmin), "eq-1")
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}

func TestEquipmentService_StoresTextAsSent(t *testing.T) {
	svc, _ := newEquipmentFixture(false)
	payload := validEquipmentPayload()
	payload.Name = " Lathe 3000 "
	payload.SerialNumber = "SN-001 "

	created, err := svc.CreateEquipment(asActor(constants.RoleManager), payload)
	require.NoError(t, err)

	found, err := svc.FindEquipment(asActor(constants.RoleRequester), created.ID)
	require.NoError(t, err)
	assert.Equal(t, " Lathe 3000 ", found.Name)
	assert.Equal(t, "SN-001 ", found.SerialNumber)
}

func TestEquipmentService_RejectsBlankText(t *testing.T) {
	svc, repo := newEquipmentFixture(false)

	for _, mutate := range []func(*dto.CreateEquipmentDTO){
		func(p *dto.CreateEquipmentDTO) { p.Name = "   " },
		func(p *dto.CreateEquipmentDTO) { p.SerialNumber = "\t" },
	} {
		payload := validEquipmentPayload()
		mutate(&payload)
		_, err := svc.CreateEquipment(asActor(constants.RoleManager), payload)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	}
	assert.Empty(t, repo.items)

	created, err := svc.CreateEquipment(asActor(constants.RoleManager), validEquipmentPayload())
	require.NoError(t, err)

	_, err = updateEquipment(t, svc, constants.RoleManager, created.ID, `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	assert.Equal(t, "Lathe 3000", repo.items[created.ID].Name)
}
