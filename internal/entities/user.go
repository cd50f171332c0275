package entities

import (
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type User struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Role         constants.Role `db:"role"`
	PasswordHash string         `db:"password_hash"`

	types.BaseEntity
}
