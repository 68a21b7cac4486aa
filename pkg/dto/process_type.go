package dto

import "github.com/google/uuid"

type CreateProcessTypeRequest struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}

type ProcessTypeResponse struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	TeamID uuid.UUID `json:"team_id"`
}
