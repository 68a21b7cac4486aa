package models

import (
	"time"

	"github.com/google/uuid"
)

type ProcessTypeStatus int

const (
	ProcessTypeBanned ProcessTypeStatus = 0
	ProcessTypeActive ProcessTypeStatus = 1
)

type ProcessType struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	TeamID    uuid.UUID         `json:"team_id"`
	Status    ProcessTypeStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}
