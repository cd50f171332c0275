package dto

import (
	"time"

	"gearguard/internal/entities"
)

type CreateUserDTO struct {
	Name     string `json:"name" validate:"required,notblank,max=120"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Role     string `json:"role" validate:"omitempty,role"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// UpdateUserDTO applies only the fields present in the body.
type UpdateUserDTO struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=120"`
	Role     *string `json:"role" validate:"omitempty,role"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
}

type UserOutDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewUserOut(u *entities.User) UserOutDTO {
	return UserOutDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: formatTimestamp(u.CreatedAt),
		UpdatedAt: formatTimestamp(u.UpdatedAt),
	}
}

func NewUserOutList(users []entities.User) []UserOutDTO {
	out := make([]UserOutDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserOut(&users[i]))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
