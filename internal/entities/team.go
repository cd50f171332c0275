package entities

import "gearguard/pkg/types"

// Team member ids are not checked against users.
type Team struct {
	ID        string   `db:"id"`
	Name      string   `db:"name"`
	MemberIDs []string `db:"member_ids"`

	types.BaseEntity
}
