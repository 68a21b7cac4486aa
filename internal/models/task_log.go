package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskLogType int

const (
	TaskLogCreated       TaskLogType = 0
	TaskLogUpdated       TaskLogType = 1
	TaskLogStatusChanged TaskLogType = 2
	TaskLogDeleted       TaskLogType = 3
)

// TaskLog is a notice addressed to a single receiver.
type TaskLog struct {
	ID         int64       `json:"id"`
	EditorID   uuid.UUID   `json:"editor_id"`
	ReceiverID uuid.UUID   `json:"receiver_id"`
	TeamID     uuid.UUID   `json:"team_id"`
	ProjectID  *uuid.UUID  `json:"project_id,omitempty"`
	TaskID     *uuid.UUID  `json:"task_id,omitempty"`
	Type       TaskLogType `json:"type"`
	Status     TaskStatus  `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`

	EditorName  string `json:"editor_name,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	TaskTitle   string `json:"task_title,omitempty"`
}
