package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}

type UpdateProjectRequest struct {
	Name string `json:"name"`
}

type UpdateProjectStatusRequest struct {
	Status *int `json:"status"`
}

type ProjectResponse struct {
	ID        uuid.UUID         `json:"project_id"`
	Name      string            `json:"name"`
	TeamID    uuid.UUID         `json:"team_id"`
	Status    int               `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   *TaskCountSummary `json:"task_summary,omitempty"`
}

type TaskCountSummary struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}
