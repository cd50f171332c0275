package authz

import (
	"net/http"
	"testing"

	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestCan_Matrix(t *testing.T) {
	admin, manager, tech, requester := constants.RoleAdmin, constants.RoleManager, constants.RoleTechnician, constants.RoleRequester
	expected := map[Action][]constants.Role{
		UsersList:       {admin, manager},
		UsersUpdate:     {admin, manager},
		UsersCreate:     {admin},
		TeamsCreate:     {admin, manager},
		TeamsUpdate:     {admin, manager},
		TeamsDelete:     {admin},
		EquipmentCreate: {admin, manager},
		EquipmentUpdate: {admin, manager},
		EquipmentDelete: {admin},
		EquipmentScrap:  {admin, manager},
		RequestsCreate:  {admin, manager, tech, requester},
		RequestsView:    {admin, manager, tech, requester},
		RequestsUpdate:  {admin, manager, tech, requester},
		RequestsScrap:   {admin, manager},
		RequestsDelete:  {admin, manager},
		ReportsView:     {admin, manager},
	}
	assert.Len(t, Actions(), len(expected))

	for action, allowed := range expected {
		allowedSet := roleSet(allowed...)
		for _, role := range constants.Roles {
			assert.Equal(t, allowedSet[role], Can(role, action), "action=%s role=%s", action, role)
		}
	}
}

func TestCan_UnknownInputs(t *testing.T) {
	assert.False(t, Can(constants.Role("root"), UsersCreate))
	assert.False(t, Can(constants.RoleAdmin, Action("users:purge")))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(constants.RoleManager, RequestsScrap))

	err := Authorize(constants.RoleTechnician, RequestsScrap)
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
