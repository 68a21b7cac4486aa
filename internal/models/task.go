package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus int

const (
	TaskTodo         TaskStatus = 0
	TaskUnderReview  TaskStatus = 1
	TaskDone         TaskStatus = 2
	TaskReviewFailed TaskStatus = 3
	TaskBan          TaskStatus = 4
)

func (s TaskStatus) Valid() bool {
	return s >= TaskTodo && s <= TaskBan
}

func (s TaskStatus) String() string {
	switch s {
	case TaskTodo:
		return "todo"
	case TaskUnderReview:
		return "under_review"
	case TaskDone:
		return "done"
	case TaskReviewFailed:
		return "review_failed"
	case TaskBan:
		return "ban"
	}
	return "unknown"
}

const (
	PriorityHighest = 0
	PriorityLowest  = 4
)

type Task struct {
	ID               uuid.UUID  `json:"task_id"`
	Title            string     `json:"title"`
	Content          string     `json:"content"`
	ProjectID        uuid.UUID  `json:"project_id"`
	CreatorID        uuid.UUID  `json:"creator_id"`
	ProcessTypeID    *int64     `json:"process_type_id,omitempty"`
	Priority         int        `json:"priority"`
	StartTime        int64      `json:"start_time"`
	EndTime          int64      `json:"end_time"`
	ReviewerID       *uuid.UUID `json:"reviewer_id,omitempty"`
	OwnerIDs         UserSet    `json:"owner_ids"`
	Status           TaskStatus `json:"status"`
	DoneTaskTime     *time.Time `json:"done_task_time,omitempty"`
	ApprovedTaskTime *time.Time `json:"approved_task_time,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (t *Task) IsReviewer(id uuid.UUID) bool {
	return t.ReviewerID != nil && *t.ReviewerID == id
}

// Participants returns owners plus the reviewer, without duplicates.
func (t *Task) Participants() UserSet {
	out := NewUserSet(t.OwnerIDs...)
	if t.ReviewerID != nil {
		out = out.Add(*t.ReviewerID)
	}
	return out
}
