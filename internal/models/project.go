package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus int

const (
	ProjectBanned   ProjectStatus = 0
	ProjectActive   ProjectStatus = 1
	ProjectArchived ProjectStatus = 2
)

func (s ProjectStatus) Valid() bool {
	return s >= ProjectBanned && s <= ProjectArchived
}

type Project struct {
	ID        uuid.UUID     `json:"project_id"`
	Name      string        `json:"name"`
	TeamID    uuid.UUID     `json:"team_id"`
	Status    ProjectStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

func (p *Project) IsArchived() bool {
	return p.Status == ProjectArchived
}

// ProjectSummary carries a project with its task counters.
type ProjectSummary struct {
	Project
	Total int `json:"total"`
	Done  int `json:"done"`
}

const (
	SummaryDoneTask     = "done_task"
	SummaryApprovedTask = "approved_task"
)

// DailyCount is the number of tasks of one kind stamped on a given day.
type DailyCount struct {
	Day   string `json:"day"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// UserTaskStats holds one user's task counters within a project.
type UserTaskStats struct {
	DoneCount       int `json:"done_count"`
	ReviewedCount   int `json:"reviewed_count"`
	NeedDoneCount   int `json:"need_done_count"`
	NeedReviewCount int `json:"need_review_count"`
}
