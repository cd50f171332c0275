package authz

import "gearguard/pkg/constants"

// Action names a guarded operation.
type Action string

const (
	// Users
	UsersList   Action = "users:list"
	UsersCreate Action = "users:create"
	UsersUpdate Action = "users:update"

	// Teams
	TeamsCreate Action = "teams:create"
	TeamsUpdate Action = "teams:update"
	TeamsDelete Action = "teams:delete"

	// Equipment
	EquipmentCreate Action = "equipment:create"
	EquipmentUpdate Action = "equipment:update"
	EquipmentDelete Action = "equipment:delete"
	EquipmentScrap  Action = "equipment:scrap"

	// Maintenance requests
	RequestsCreate Action = "requests:create"
	RequestsView   Action = "requests:view"
	RequestsUpdate Action = "requests:update"
	RequestsScrap  Action = "requests:scrap"
	RequestsDelete Action = "requests:delete"

	// Reports
	ReportsView Action = "reports:view"
)

var (
	adminAndManager = roleSet(constants.RoleAdmin, constants.RoleManager)
	adminOnly       = roleSet(constants.RoleAdmin)
	anyRole         = roleSet(constants.Roles...)
)

// matrix maps every action to the roles allowed to perform it.
var matrix = map[Action]map[constants.Role]bool{
	UsersList:   adminAndManager,
	UsersCreate: adminOnly,
	UsersUpdate: adminAndManager,

	TeamsCreate: adminAndManager,
	TeamsUpdate: adminAndManager,
	TeamsDelete: adminOnly,

	EquipmentCreate: adminAndManager,
	EquipmentUpdate: adminAndManager,
	EquipmentDelete: adminOnly,
	EquipmentScrap:  adminAndManager,

	RequestsCreate: anyRole,
	RequestsView:   anyRole,
	RequestsUpdate: anyRole,
	RequestsScrap:  adminAndManager,
	RequestsDelete: adminAndManager,

	ReportsView: adminAndManager,
}

// Actions lists every known action.
func Actions() []Action {
	out := make([]Action, 0, len(matrix))
	for a := range matrix {
		out = append(out, a)
	}
	return out
}

func roleSet(roles ...constants.Role) map[constants.Role]bool {
	set := make(map[constants.Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}
