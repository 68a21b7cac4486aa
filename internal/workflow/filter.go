package workflow

import (
	"errors"
	"strings"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
)

type Scope int

const (
	ScopeAll  Scope = 0
	ScopeMine Scope = 1
)

const (
	OrderPriority  = "priority"
	OrderStartTime = "start_time"
	OrderEndTime   = "end_time"
	OrderCreatedAt = "created_at"
)

var (
	ErrInvalidOrderField = errors.New("invalid order field")
	ErrInvalidOrderDir   = errors.New("invalid order direction")
	ErrInvalidScope      = errors.New("invalid scope")
	ErrInvalidStatus     = errors.New("invalid status")
)

var orderFields = map[string]bool{
	OrderPriority:  true,
	OrderStartTime: true,
	OrderEndTime:   true,
	OrderCreatedAt: true,
}

type TaskFilter struct {
	Status   *models.TaskStatus
	Scope    Scope
	OrderBy  string
	OrderDir string
}

// Criteria is a resolved task list predicate plus its ordering.
type Criteria struct {
	Viewer uuid.UUID
	// Statuses is the accepted status set; empty means any status but Ban.
	Statuses []models.TaskStatus
	// OwnerOnly requires Viewer in the owner set.
	OwnerOnly bool
	// OwnerOrReviewer requires Viewer in the owner set or as reviewer.
	OwnerOrReviewer bool
	OrderBy         string
	Desc            bool
}

// Resolve turns the filter into criteria for viewer.
func (f TaskFilter) Resolve(viewer uuid.UUID) (Criteria, error) {
	c := Criteria{
		Viewer:  viewer,
		OrderBy: OrderCreatedAt,
		Desc:    true,
	}

	if f.OrderBy != "" {
		if f.OrderBy == "createdAt" {
			f.OrderBy = OrderCreatedAt
		}
		if !orderFields[f.OrderBy] {
			return Criteria{}, ErrInvalidOrderField
		}
		c.OrderBy = f.OrderBy
	}

	switch strings.ToLower(f.OrderDir) {
	case "":
	case "asc":
		c.Desc = false
	case "desc":
		c.Desc = true
	default:
		return Criteria{}, ErrInvalidOrderDir
	}

	if f.Status != nil {
		switch s := *f.Status; s {
		case models.TaskTodo:
			c.Statuses = []models.TaskStatus{models.TaskTodo, models.TaskReviewFailed}
		case models.TaskUnderReview, models.TaskDone, models.TaskReviewFailed:
			c.Statuses = []models.TaskStatus{s}
		default:
			return Criteria{}, ErrInvalidStatus
		}
	}

	switch f.Scope {
	case ScopeAll:
	case ScopeMine:
		if f.Status != nil && *f.Status == models.TaskTodo {
			c.OwnerOnly = true
		} else {
			c.OwnerOrReviewer = true
		}
	default:
		return Criteria{}, ErrInvalidScope
	}

	return c, nil
}

// Matches evaluates the criteria against a task in memory.
func (c Criteria) Matches(t *models.Task) bool {
	if t == nil || t.Status == models.TaskBan {
		return false
	}
	if len(c.Statuses) > 0 {
		found := false
		for _, s := range c.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.OwnerOnly && !t.OwnerIDs.Contains(c.Viewer) {
		return false
	}
	if c.OwnerOrReviewer && !t.OwnerIDs.Contains(c.Viewer) && !t.IsReviewer(c.Viewer) {
		return false
	}
	return true
}

// Direction returns the SQL keyword for the ordering direction.
func (c Criteria) Direction() string {
	if c.Desc {
		return "DESC"
	}
	return "ASC"
}
