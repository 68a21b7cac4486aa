package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamStatus int

const (
	TeamBanned TeamStatus = 0
	TeamActive TeamStatus = 1
)

type Team struct {
	ID        uuid.UUID  `json:"team_id"`
	Name      string     `json:"name"`
	CreatorID uuid.UUID  `json:"creator_id"`
	Members   UserSet    `json:"members"`
	Status    TeamStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// HasMember reports whether id is the creator or listed in Members.
// The creator counts as a member even when absent from the set.
func (t *Team) HasMember(id uuid.UUID) bool {
	return t.CreatorID == id || t.Members.Contains(id)
}

// Roster returns the creator followed by every other member.
func (t *Team) Roster() UserSet {
	return NewUserSet(t.CreatorID).Add(t.Members...)
}
