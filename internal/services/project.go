package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	maxProjectNameLength = 30
	summaryDays          = 7
	dayLayout            = "2006-01-02"
)

type ProjectService struct {
	db     *database.DB
	access *AccessService
	now    func() time.Time
}

func NewProjectService(db *database.DB, access *AccessService) *ProjectService {
	return &ProjectService{db: db, access: access, now: time.Now}
}

func (s *ProjectService) Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.Project, error) {
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return nil, err
	}
	name, err := normalizeName(name, maxProjectNameLength)
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, name, team_id, status, created_at
	`, name, teamID, models.ProjectActive).Scan(projectDest(&project)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// Get returns the project with its total and done task counts, read from
// one snapshot.
func (s *ProjectService) Get(ctx context.Context, uid, projectID uuid.UUID) (*models.ProjectSummary, error) {
	pa, err := s.access.ResolveProject(ctx, uid, projectID)
	if err != nil {
		return nil, err
	}

	summary := &models.ProjectSummary{Project: *pa.Project}
	err = s.db.ReadOnly(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND status <> $2
		`, projectID, models.TaskBan).Scan(&summary.Total); err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND status = $2
		`, projectID, models.TaskDone).Scan(&summary.Done); err != nil {
			return fmt.Errorf("failed to count done tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// List returns the team's projects in the given status with their task
// counts. Banned projects cannot be listed.
func (s *ProjectService) List(ctx context.Context, uid, teamID uuid.UUID, status models.ProjectStatus) ([]models.ProjectSummary, error) {
	if status == models.ProjectBanned || !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return nil, err
	}

	projects := []models.ProjectSummary{}
	err := s.db.ReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT p.id, p.name, p.team_id, p.status, p.created_at
			FROM projects p
			WHERE p.team_id = $1 AND p.status = $2
			ORDER BY p.created_at DESC
		`, teamID, status)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		index := map[uuid.UUID]int{}
		ids := []uuid.UUID{}
		for rows.Next() {
			var p models.ProjectSummary
			if err := rows.Scan(projectDest(&p.Project)...); err != nil {
				rows.Close()
				return err
			}
			index[p.ID] = len(projects)
			ids = append(ids, p.ID)
			projects = append(projects, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		counts, err := tx.Query(ctx, `
			SELECT project_id,
				COUNT(*) FILTER (WHERE status <> $2),
				COUNT(*) FILTER (WHERE status = $3)
			FROM tasks
			WHERE project_id = ANY($1)
			GROUP BY project_id
		`, ids, models.TaskBan, models.TaskDone)
		if err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		defer counts.Close()
		for counts.Next() {
			var id uuid.UUID
			var total, done int
			if err := counts.Scan(&id, &total, &done); err != nil {
				return err
			}
			if i, ok := index[id]; ok {
				projects[i].Total = total
				projects[i].Done = done
			}
		}
		return counts.Err()
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, uid, projectID uuid.UUID, name string) (*models.Project, error) {
	pa, err := s.access.ResolveProject(ctx, uid, projectID)
	if err != nil {
		return nil, err
	}
	if err := pa.EnsureWritable(); err != nil {
		return nil, err
	}
	name, err = normalizeName(name, maxProjectNameLength)
	if err != nil {
		return nil, err
	}

	var project models.Project
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET name = $1
		WHERE id = $2
		RETURNING id, name, team_id, status, created_at
	`, name, projectID).Scan(projectDest(&project)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &project, nil
}

// UpdateStatus archives, re-activates or bans a project. It is allowed on
// archived projects so they can be restored.
func (s *ProjectService) UpdateStatus(ctx context.Context, uid, projectID uuid.UUID, status models.ProjectStatus) (*models.Project, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := s.access.ResolveProject(ctx, uid, projectID); err != nil {
		return nil, err
	}

	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET status = $1
		WHERE id = $2
		RETURNING id, name, team_id, status, created_at
	`, status, projectID).Scan(projectDest(&project)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, uid, projectID uuid.UUID) error {
	pa, err := s.access.ResolveProject(ctx, uid, projectID)
	if err != nil {
		return err
	}
	if err := pa.EnsureWritable(); err != nil {
		return err
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE projects SET status = $1 WHERE id = $2
	`, models.ProjectBanned, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// Summary returns, for each of the last seven days, how many tasks were
// submitted for review and how many were approved. With mine set only
// tasks the caller owns (submitted) or reviews (approved) are counted.
func (s *ProjectService) Summary(ctx context.Context, uid, projectID uuid.UUID, mine bool) ([]models.DailyCount, error) {
	if _, err := s.access.ResolveProject(ctx, uid, projectID); err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, -(summaryDays - 1))
	to := today.AddDate(0, 0, 1)

	done := map[string]int{}
	approved := map[string]int{}
	err := s.db.ReadOnly(ctx, func(tx pgx.Tx) error {
		if err := countByDay(ctx, tx, `
			SELECT to_char(done_task_time AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
			FROM tasks
			WHERE project_id = $1 AND status <> $2
				AND done_task_time >= $3 AND done_task_time < $4
				AND (NOT $5 OR $6 = ANY(owner_ids))
			GROUP BY day
		`, done, projectID, models.TaskBan, from, to, mine, uid); err != nil {
			return fmt.Errorf("failed to summarize done tasks: %w", err)
		}
		if err := countByDay(ctx, tx, `
			SELECT to_char(approved_task_time AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
			FROM tasks
			WHERE project_id = $1 AND status <> $2
				AND approved_task_time >= $3 AND approved_task_time < $4
				AND (NOT $5 OR reviewer_id = $6)
			GROUP BY day
		`, approved, projectID, models.TaskBan, from, to, mine, uid); err != nil {
			return fmt.Errorf("failed to summarize approved tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.DailyCount, 0, summaryDays*2)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		day := d.Format(dayLayout)
		out = append(out,
			models.DailyCount{Day: day, Type: models.SummaryDoneTask, Count: done[day]},
			models.DailyCount{Day: day, Type: models.SummaryApprovedTask, Count: approved[day]},
		)
	}
	return out, nil
}

func countByDay(ctx context.Context, tx pgx.Tx, sql string, into map[string]int, args ...any) error {
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return err
		}
		into[day] = n
	}
	return rows.Err()
}

// UserStats returns the caller's task counters within the project.
func (s *ProjectService) UserStats(ctx context.Context, uid, projectID uuid.UUID) (*models.UserTaskStats, error) {
	if _, err := s.access.ResolveProject(ctx, uid, projectID); err != nil {
		return nil, err
	}

	var stats models.UserTaskStats
	err := s.db.ReadOnly(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			SELECT
				COUNT(*) FILTER (WHERE $2 = ANY(owner_ids) AND status IN ($3, $4)),
				COUNT(*) FILTER (WHERE reviewer_id = $2 AND status IN ($5, $4)),
				COUNT(*) FILTER (WHERE $2 = ANY(owner_ids)),
				COUNT(*) FILTER (WHERE reviewer_id = $2)
			FROM tasks
			WHERE project_id = $1 AND status <> $6
		`, projectID, uid, models.TaskUnderReview, models.TaskDone, models.TaskReviewFailed, models.TaskBan).Scan(
			&stats.DoneCount, &stats.ReviewedCount, &stats.NeedDoneCount, &stats.NeedReviewCount,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load task stats: %w", err)
	}
	return &stats, nil
}
