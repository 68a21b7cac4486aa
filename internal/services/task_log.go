package services

import (
	"context"
	"fmt"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
)

const noticeListLimit = 200

// NoticePublisher receives every notice after it is stored.
type NoticePublisher interface {
	PublishNotice(notice models.TaskLog)
}

// TaskLogService writes and reads notices about task changes.
type TaskLogService struct {
	db        *database.DB
	access    *AccessService
	publisher NoticePublisher
}

func NewTaskLogService(db *database.DB, access *AccessService, publisher NoticePublisher) *TaskLogService {
	return &TaskLogService{db: db, access: access, publisher: publisher}
}

// Record stores one notice per participant of the task except the editor.
// q may be a transaction; stored notices are not published until Publish.
func (s *TaskLogService) Record(ctx context.Context, q database.Querier, editorID, teamID uuid.UUID, task *models.Task, logType models.TaskLogType) ([]models.TaskLog, error) {
	receivers := task.Participants().Remove(editorID)
	notices := make([]models.TaskLog, 0, len(receivers))
	if len(receivers) == 0 {
		return notices, nil
	}

	projectID := task.ProjectID
	taskID := task.ID

	rows, err := q.Query(ctx, `
		INSERT INTO task_logs (editor_id, receiver_id, team_id, project_id, task_id, type, status)
		SELECT $1, r, $3, $4, $5, $6, $7 FROM unnest($2::uuid[]) AS r
		RETURNING id, receiver_id, created_at
	`, editorID, receivers, teamID, projectID, taskID, logType, task.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to record notices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		n := models.TaskLog{
			EditorID:  editorID,
			TeamID:    teamID,
			ProjectID: &projectID,
			TaskID:    &taskID,
			Type:      logType,
			Status:    task.Status,
			TaskTitle: task.Title,
		}
		if err := rows.Scan(&n.ID, &n.ReceiverID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to record notices: %w", err)
	}
	return notices, nil
}

// Publish pushes committed notices to connected receivers.
func (s *TaskLogService) Publish(notices []models.TaskLog) {
	if s.publisher == nil {
		return
	}
	for _, n := range notices {
		s.publisher.PublishNotice(n)
	}
}

// ListForReceiver returns the caller's notices within a team, newest first.
func (s *TaskLogService) ListForReceiver(ctx context.Context, uid, teamID uuid.UUID) ([]models.TaskLog, error) {
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT l.id, l.editor_id, l.receiver_id, l.team_id, l.project_id, l.task_id, l.type, l.status, l.created_at,
		       u.name, COALESCE(p.name, ''), COALESCE(k.title, '')
		FROM task_logs l
		JOIN users u ON u.id = l.editor_id
		LEFT JOIN projects p ON p.id = l.project_id
		LEFT JOIN tasks k ON k.id = l.task_id
		WHERE l.receiver_id = $1 AND l.team_id = $2
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $3
	`, uid, teamID, noticeListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := []models.TaskLog{}
	for rows.Next() {
		var n models.TaskLog
		if err := rows.Scan(
			&n.ID, &n.EditorID, &n.ReceiverID, &n.TeamID, &n.ProjectID, &n.TaskID, &n.Type, &n.Status, &n.CreatedAt,
			&n.EditorName, &n.ProjectName, &n.TaskTitle,
		); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}
