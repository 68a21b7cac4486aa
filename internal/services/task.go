package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/workflow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	maxTaskTitleLength = 50
	taskReturning      = `id, title, content, project_id, creator_id, process_type_id, priority,
		start_time, end_time, reviewer_id, owner_ids, status, done_task_time,
		approved_task_time, created_at, updated_at`
)

var ErrAssigneeNotMember = badRequest("reviewer and owners must be team members")

// TaskInput describes a new task. A nil Priority means lowest.
type TaskInput struct {
	ProjectID     uuid.UUID
	Title         string
	Content       string
	ProcessTypeID *int64
	Priority      *int
	StartTime     int64
	EndTime       int64
	ReviewerID    *uuid.UUID
	OwnerIDs      []uuid.UUID
}

// TaskUpdate carries optional changes; nil fields are kept.
type TaskUpdate struct {
	Title         *string
	Content       *string
	ProcessTypeID *int64
	Priority      *int
	StartTime     *int64
	EndTime       *int64
	ReviewerID    *uuid.UUID
	OwnerIDs      *[]uuid.UUID
}

type TaskService struct {
	db           *database.DB
	access       *AccessService
	processTypes *ProcessTypeService
	notices      *TaskLogService
	now          func() time.Time
}

func NewTaskService(db *database.DB, access *AccessService, processTypes *ProcessTypeService, notices *TaskLogService) *TaskService {
	return &TaskService{
		db:           db,
		access:       access,
		processTypes: processTypes,
		notices:      notices,
		now:          time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, uid uuid.UUID, in TaskInput) (*models.Task, error) {
	pa, err := s.access.ResolveProject(ctx, uid, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := pa.EnsureWritable(); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:     in.ProjectID,
		CreatorID:     uid,
		Title:         in.Title,
		Content:       in.Content,
		ProcessTypeID: in.ProcessTypeID,
		Priority:      models.PriorityLowest,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		ReviewerID:    in.ReviewerID,
		OwnerIDs:      models.NewUserSet(in.OwnerIDs...),
		Status:        models.TaskTodo,
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if err := s.validate(task, pa.Team); err != nil {
		return nil, err
	}
	if in.ProcessTypeID != nil {
		if err := s.processTypes.EnsureInTeam(ctx, *in.ProcessTypeID, pa.Team.ID); err != nil {
			return nil, err
		}
	}

	return s.write(ctx, uid, pa.Team.ID, models.TaskLogCreated, func(tx pgx.Tx) (*models.Task, error) {
		var created models.Task
		err := tx.QueryRow(ctx, `
			INSERT INTO tasks (title, content, project_id, creator_id, process_type_id, priority,
				start_time, end_time, reviewer_id, owner_ids, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING `+taskReturning,
			task.Title, task.Content, task.ProjectID, task.CreatorID, task.ProcessTypeID, task.Priority,
			task.StartTime, task.EndTime, task.ReviewerID, task.OwnerIDs, task.Status,
		).Scan(taskDest(&created)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		return &created, nil
	})
}

func (s *TaskService) Get(ctx context.Context, uid, taskID uuid.UUID) (*models.Task, error) {
	ta, err := s.access.ResolveTask(ctx, uid, taskID)
	if err != nil {
		return nil, err
	}
	return ta.Task, nil
}

// List returns the project's tasks matching filter as seen by uid.
func (s *TaskService) List(ctx context.Context, uid, projectID uuid.UUID, filter workflow.TaskFilter) ([]models.Task, error) {
	criteria, err := filter.Resolve(uid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	if _, err := s.access.ResolveProject(ctx, uid, projectID); err != nil {
		return nil, err
	}

	query, args := listTasksQuery(projectID, criteria)
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(taskDest(&task)...); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// listTasksQuery renders criteria as SQL over tasks aliased k.
func listTasksQuery(projectID uuid.UUID, c workflow.Criteria) (string, []any) {
	var (
		sb   strings.Builder
		args = []any{projectID, models.TaskBan}
		n    = 3
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks k WHERE k.project_id = $1 AND k.status <> $2`)

	if len(c.Statuses) > 0 {
		statuses := make([]int, len(c.Statuses))
		for i, st := range c.Statuses {
			statuses[i] = int(st)
		}
		args = append(args, statuses)
		sb.WriteString(fmt.Sprintf(" AND k.status = ANY($%d)", n))
		n++
	}

	switch {
	case c.OwnerOnly:
		args = append(args, c.Viewer)
		sb.WriteString(fmt.Sprintf(" AND $%d = ANY(k.owner_ids)", n))
	case c.OwnerOrReviewer:
		args = append(args, c.Viewer)
		sb.WriteString(fmt.Sprintf(" AND ($%d = ANY(k.owner_ids) OR k.reviewer_id = $%d)", n, n))
	}

	// OrderBy comes from a fixed whitelist in workflow.
	sb.WriteString(fmt.Sprintf(" ORDER BY k.%s %s, k.id", c.OrderBy, c.Direction()))
	return sb.String(), args
}

func (s *TaskService) Update(ctx context.Context, uid, taskID uuid.UUID, upd TaskUpdate) (*models.Task, error) {
	ta, err := s.access.ResolveTask(ctx, uid, taskID)
	if err != nil {
		return nil, err
	}
	if err := ta.EnsureWritable(); err != nil {
		return nil, err
	}

	task := *ta.Task
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Content != nil {
		task.Content = *upd.Content
	}
	if upd.ProcessTypeID != nil {
		task.ProcessTypeID = upd.ProcessTypeID
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if upd.StartTime != nil {
		task.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		task.EndTime = *upd.EndTime
	}
	if upd.ReviewerID != nil {
		task.ReviewerID = upd.ReviewerID
	}
	if upd.OwnerIDs != nil {
		task.OwnerIDs = models.NewUserSet(*upd.OwnerIDs...)
	}
	if err := s.validate(&task, ta.Team); err != nil {
		return nil, err
	}
	if upd.ProcessTypeID != nil {
		if err := s.processTypes.EnsureInTeam(ctx, *upd.ProcessTypeID, ta.Team.ID); err != nil {
			return nil, err
		}
	}

	return s.write(ctx, uid, ta.Team.ID, models.TaskLogUpdated, func(tx pgx.Tx) (*models.Task, error) {
		var updated models.Task
		err := tx.QueryRow(ctx, `
			UPDATE tasks SET title = $1, content = $2, process_type_id = $3, priority = $4,
				start_time = $5, end_time = $6, reviewer_id = $7, owner_ids = $8, updated_at = NOW()
			WHERE id = $9
			RETURNING `+taskReturning,
			task.Title, task.Content, task.ProcessTypeID, task.Priority,
			task.StartTime, task.EndTime, task.ReviewerID, task.OwnerIDs, taskID,
		).Scan(taskDest(&updated)...)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		return &updated, nil
	})
}

// UpdateStatus moves the task through the status workflow. Repeating the
// current status changes nothing and records no notice.
func (s *TaskService) UpdateStatus(ctx context.Context, uid, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	ta, err := s.access.ResolveTask(ctx, uid, taskID)
	if err != nil {
		return nil, err
	}
	if err := ta.EnsureWritable(); err != nil {
		return nil, err
	}

	task := *ta.Task
	changed, err := workflow.Apply(&task, status, s.now())
	if err != nil {
		if errors.Is(err, workflow.ErrTransitionNotAllowed) {
			return nil, ErrStatusEscalation
		}
		return nil, err
	}
	if !changed {
		return ta.Task, nil
	}

	return s.write(ctx, uid, ta.Team.ID, models.TaskLogStatusChanged, func(tx pgx.Tx) (*models.Task, error) {
		var updated models.Task
		err := tx.QueryRow(ctx, `
			UPDATE tasks SET status = $1, done_task_time = $2, approved_task_time = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING `+taskReturning,
			task.Status, task.DoneTaskTime, task.ApprovedTaskTime, taskID,
		).Scan(taskDest(&updated)...)
		if err != nil {
			return nil, fmt.Errorf("failed to update task status: %w", err)
		}
		return &updated, nil
	})
}

// Delete moves the task to Ban.
func (s *TaskService) Delete(ctx context.Context, uid, taskID uuid.UUID) error {
	ta, err := s.access.ResolveTask(ctx, uid, taskID)
	if err != nil {
		return err
	}
	if err := ta.EnsureWritable(); err != nil {
		return err
	}

	_, err = s.write(ctx, uid, ta.Team.ID, models.TaskLogDeleted, func(tx pgx.Tx) (*models.Task, error) {
		if _, err := tx.Exec(ctx, `
			UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2
		`, models.TaskBan, taskID); err != nil {
			return nil, fmt.Errorf("failed to delete task: %w", err)
		}
		deleted := *ta.Task
		deleted.Status = models.TaskBan
		return &deleted, nil
	})
	return err
}

// write runs mutate and records notices about its result in one
// transaction, publishing the notices after commit.
func (s *TaskService) write(ctx context.Context, editorID, teamID uuid.UUID, logType models.TaskLogType, mutate func(tx pgx.Tx) (*models.Task, error)) (*models.Task, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task, err := mutate(tx)
	if err != nil {
		return nil, err
	}

	notices, err := s.notices.Record(ctx, tx, editorID, teamID, task, logType)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notices.Publish(notices)
	return task, nil
}

func (s *TaskService) validate(task *models.Task, team *models.Team) error {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" || len([]rune(task.Title)) > maxTaskTitleLength {
		return ErrInvalidTitle
	}
	if task.Priority < models.PriorityHighest || task.Priority > models.PriorityLowest {
		return ErrInvalidPriority
	}
	if err := workflow.ValidateTimeRange(task.StartTime, task.EndTime); err != nil {
		return ErrInvalidTimeRange
	}
	if task.ReviewerID != nil && !team.HasMember(*task.ReviewerID) {
		return ErrAssigneeNotMember
	}
	for _, owner := range task.OwnerIDs {
		if !team.HasMember(owner) {
			return ErrAssigneeNotMember
		}
	}
	return nil
}
