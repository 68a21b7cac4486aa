package dto

import "github.com/google/uuid"

type CreateTeamRequest struct {
	Name    string      `json:"name"`
	Members []uuid.UUID `json:"members"`
}

type UpdateTeamRequest struct {
	Name    *string      `json:"name"`
	Members *[]uuid.UUID `json:"members"`
}

type TeamResponse struct {
	ID        uuid.UUID   `json:"team_id"`
	Name      string      `json:"name"`
	CreatorID uuid.UUID   `json:"creator_id"`
	Members   []uuid.UUID `json:"members"`
	IsCreator bool        `json:"is_creator"`
}
