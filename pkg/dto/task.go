package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ProjectID     uuid.UUID   `json:"project_id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	ProcessTypeID *int64      `json:"process_type_id"`
	Priority      *int        `json:"priority"`
	StartTime     int64       `json:"start_time"`
	EndTime       int64       `json:"end_time"`
	ReviewerID    *uuid.UUID  `json:"reviewer_id"`
	OwnerIDs      []uuid.UUID `json:"owner_ids"`
}

type UpdateTaskRequest struct {
	Title         *string      `json:"title"`
	Content       *string      `json:"content"`
	ProcessTypeID *int64       `json:"process_type_id"`
	Priority      *int         `json:"priority"`
	StartTime     *int64       `json:"start_time"`
	EndTime       *int64       `json:"end_time"`
	ReviewerID    *uuid.UUID   `json:"reviewer_id"`
	OwnerIDs      *[]uuid.UUID `json:"owner_ids"`
}

type UpdateTaskStatusRequest struct {
	Status *int `json:"status"`
}

type TaskResponse struct {
	ID               uuid.UUID   `json:"task_id"`
	Title            string      `json:"title"`
	Content          string      `json:"content"`
	ProjectID        uuid.UUID   `json:"project_id"`
	CreatorID        uuid.UUID   `json:"creator_id"`
	ProcessTypeID    *int64      `json:"process_type_id,omitempty"`
	Priority         int         `json:"priority"`
	StartTime        int64       `json:"start_time"`
	EndTime          int64       `json:"end_time"`
	ReviewerID       *uuid.UUID  `json:"reviewer_id,omitempty"`
	OwnerIDs         []uuid.UUID `json:"owner_ids"`
	Status           int         `json:"status"`
	DoneTaskTime     *time.Time  `json:"done_task_time,omitempty"`
	ApprovedTaskTime *time.Time  `json:"approved_task_time,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
