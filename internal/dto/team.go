package dto

import "gearguard/internal/entities"

type CreateTeamDTO struct {
	Name      string   `json:"name" validate:"required,notblank,max=120"`
	MemberIDs []string `json:"memberIds" validate:"omitempty,dive,required,max=36"`
}

type UpdateTeamDTO struct {
	Name      *string   `json:"name" validate:"omitempty,notblank,max=120"`
	MemberIDs *[]string `json:"memberIds" validate:"omitempty,dive,required,max=36"`
}

type TeamOutDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func NewTeamOut(t *entities.Team) TeamOutDTO {
	members := t.MemberIDs
	if members == nil {
		members = []string{}
	}
	return TeamOutDTO{
		ID:        t.ID,
		Name:      t.Name,
		MemberIDs: members,
		CreatedAt: formatTimestamp(t.CreatedAt),
		UpdatedAt: formatTimestamp(t.UpdatedAt),
	}
}

func NewTeamOutList(teams []entities.Team) []TeamOutDTO {
	out := make([]TeamOutDTO, 0, len(teams))
	for i := range teams {
		out = append(out, NewTeamOut(&teams[i]))
	}
	return out
}
