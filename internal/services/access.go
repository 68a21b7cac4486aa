package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	teamColumns    = `t.id, t.name, t.creator_id, t.members, t.status, t.created_at, t.updated_at`
	projectColumns = `p.id, p.name, p.team_id, p.status, p.created_at`
	taskColumns    = `k.id, k.title, k.content, k.project_id, k.creator_id, k.process_type_id, k.priority,
		k.start_time, k.end_time, k.reviewer_id, k.owner_ids, k.status, k.done_task_time,
		k.approved_task_time, k.created_at, k.updated_at`
)

func teamDest(t *models.Team) []any {
	return []any{&t.ID, &t.Name, &t.CreatorID, &t.Members, &t.Status, &t.CreatedAt, &t.UpdatedAt}
}

func projectDest(p *models.Project) []any {
	return []any{&p.ID, &p.Name, &p.TeamID, &p.Status, &p.CreatedAt}
}

func taskDest(k *models.Task) []any {
	return []any{
		&k.ID, &k.Title, &k.Content, &k.ProjectID, &k.CreatorID, &k.ProcessTypeID, &k.Priority,
		&k.StartTime, &k.EndTime, &k.ReviewerID, &k.OwnerIDs, &k.Status, &k.DoneTaskTime,
		&k.ApprovedTaskTime, &k.CreatedAt, &k.UpdatedAt,
	}
}

// IsTeamMember reports whether uid is the team's creator or one of its members.
func IsTeamMember(uid uuid.UUID, team *models.Team) bool {
	return team != nil && team.HasMember(uid)
}

// ProjectAccess is a project together with its owning team.
type ProjectAccess struct {
	Project *models.Project
	Team    *models.Team
}

// EnsureWritable rejects mutations beneath an archived project.
func (a *ProjectAccess) EnsureWritable() error {
	if a.Project.IsArchived() {
		return ErrProjectArchived
	}
	return nil
}

// TaskAccess is a task together with its project and team.
type TaskAccess struct {
	Task *models.Task
	ProjectAccess
}

// AccessService loads teams, projects and tasks and checks that the caller
// belongs to the owning team.
type AccessService struct {
	db *database.DB
}

func NewAccessService(db *database.DB) *AccessService {
	return &AccessService{db: db}
}

// ResolveTeam fails with NotFound for a missing or banned team and with
// Forbidden when uid is neither creator nor member.
func (s *AccessService) ResolveTeam(ctx context.Context, uid, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+teamColumns+`
		FROM teams t WHERE t.id = $1
	`, teamID).Scan(teamDest(&team)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	if team.Status == models.TeamBanned {
		return nil, ErrTeamNotFound
	}
	if !IsTeamMember(uid, &team) {
		return nil, ErrNotTeamMember
	}
	return &team, nil
}

// ResolveProject loads the project joined with its team. A banned project is
// reported as NotFound. Membership is checked against the joined team
// whatever the team's own status.
func (s *AccessService) ResolveProject(ctx context.Context, uid, projectID uuid.UUID) (*ProjectAccess, error) {
	var project models.Project
	var team models.Team
	dest := append(projectDest(&project), teamDest(&team)...)

	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+`, `+teamColumns+`
		FROM projects p
		JOIN teams t ON t.id = p.team_id
		WHERE p.id = $1
	`, projectID).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if project.Status == models.ProjectBanned {
		return nil, ErrProjectNotFound
	}
	if !IsTeamMember(uid, &team) {
		return nil, ErrNotTeamMember
	}
	return &ProjectAccess{Project: &project, Team: &team}, nil
}

// ResolveTask loads the task joined with its project and team. A deleted
// task, or one under a missing or banned project, is reported as NotFound.
func (s *AccessService) ResolveTask(ctx context.Context, uid, taskID uuid.UUID) (*TaskAccess, error) {
	var task models.Task
	var project models.Project
	var team models.Team
	dest := append(taskDest(&task), projectDest(&project)...)
	dest = append(dest, teamDest(&team)...)

	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+`, `+projectColumns+`, `+teamColumns+`
		FROM tasks k
		JOIN projects p ON p.id = k.project_id
		JOIN teams t ON t.id = p.team_id
		WHERE k.id = $1
	`, taskID).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if task.Status == models.TaskBan || project.Status == models.ProjectBanned {
		return nil, ErrTaskNotFound
	}
	if !IsTeamMember(uid, &team) {
		return nil, ErrNotTeamMember
	}
	return &TaskAccess{
		Task:          &task,
		ProjectAccess: ProjectAccess{Project: &project, Team: &team},
	}, nil
}
