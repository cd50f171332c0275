package authz

import (
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

// Can reports whether role may perform action. Unknown roles and actions are denied.
func Can(role constants.Role, action Action) bool {
	if !role.IsValid() {
		return false
	}
	return matrix[action][role]
}

// Authorize returns a Forbidden error when role may not perform action.
func Authorize(role constants.Role, action Action) error {
	if Can(role, action) {
		return nil
	}
	return apperrors.NewForbiddenError("Forbidden")
}
