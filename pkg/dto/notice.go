package dto

import "github.com/google/uuid"

type NoticeResponse struct {
	ID          int64      `json:"id"`
	Type        int        `json:"type"`
	Status      int        `json:"status"`
	Editor      string     `json:"editor"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	ProjectName string     `json:"project_name,omitempty"`
	TaskID      *uuid.UUID `json:"task_id,omitempty"`
	TaskTitle   string     `json:"task_title,omitempty"`
	CreateTime  string     `json:"create_time"`
}
