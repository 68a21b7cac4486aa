// Package workflow holds the task status state machine and the task list
// filter. It performs no I/O.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/tasker-api/internal/models"
)

var ErrTransitionNotAllowed = errors.New("status escalation not permitted")

// CanTransition reports whether a task in from may be moved to to.
// ReviewFailed is entered only from UnderReview. Ban is never a valid
// target; deletion has its own operation.
func CanTransition(from, to models.TaskStatus) bool {
	switch from {
	case models.TaskTodo:
		return to == models.TaskTodo || to == models.TaskUnderReview
	case models.TaskUnderReview:
		return to == models.TaskUnderReview || to == models.TaskDone || to == models.TaskReviewFailed
	case models.TaskDone:
		return to == models.TaskTodo || to == models.TaskUnderReview || to == models.TaskDone
	case models.TaskReviewFailed:
		return to.Valid() && to != models.TaskBan
	default:
		return false
	}
}

// Apply moves task to the requested status, stamping DoneTaskTime when the
// task enters UnderReview and ApprovedTaskTime when it enters Done.
// It reports whether the status changed; a self-transition is a no-op.
func Apply(task *models.Task, to models.TaskStatus, now time.Time) (bool, error) {
	if task == nil {
		return false, fmt.Errorf("nil task")
	}
	from := task.Status
	if !CanTransition(from, to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
	}
	if from == to {
		return false, nil
	}

	task.Status = to
	switch to {
	case models.TaskUnderReview:
		stamp := now
		task.DoneTaskTime = &stamp
	case models.TaskDone:
		stamp := now
		task.ApprovedTaskTime = &stamp
	}
	return true, nil
}

// ValidateTimeRange checks that a task does not end before it starts.
func ValidateTimeRange(start, end int64) error {
	if start > end {
		return fmt.Errorf("start time %d is after end time %d", start, end)
	}
	return nil
}
