package services

import (
	"testing"
	"time"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

const (
	resolveTeamQuery    = `FROM teams t WHERE t.id`
	resolveProjectQuery = `FROM projects p JOIN teams t ON t.id = p.team_id WHERE p.id`
	resolveTaskQuery    = `FROM tasks k JOIN projects p ON p.id = k.project_id`
)

var (
	userCols    = []string{"id", "phone", "password", "name", "email", "avatar", "sex", "status", "created_at", "updated_at"}
	teamCols    = []string{"id", "name", "creator_id", "members", "status", "created_at", "updated_at"}
	projectCols = []string{"id", "name", "team_id", "status", "created_at"}
	taskCols    = []string{
		"id", "title", "content", "project_id", "creator_id", "process_type_id", "priority",
		"start_time", "end_time", "reviewer_id", "owner_ids", "status", "done_task_time",
		"approved_task_time", "created_at", "updated_at",
	}
)

func setupMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &database.DB{Pool: mock}, mock
}

func newUser(phone string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        uuid.New(),
		Phone:     phone,
		Password:  "hash",
		Name:      "user" + phone,
		Status:    models.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTeam(creator uuid.UUID, members ...uuid.UUID) *models.Team {
	now := time.Now()
	return &models.Team{
		ID:        uuid.New(),
		Name:      "core",
		CreatorID: creator,
		Members:   models.NewUserSet(members...),
		Status:    models.TeamActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newProject(team *models.Team, status models.ProjectStatus) *models.Project {
	return &models.Project{
		ID:        uuid.New(),
		Name:      "Launch",
		TeamID:    team.ID,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func newTask(project *models.Project, creator uuid.UUID, owners ...uuid.UUID) *models.Task {
	now := time.Now()
	return &models.Task{
		ID:        uuid.New(),
		Title:     "Write release notes",
		ProjectID: project.ID,
		CreatorID: creator,
		Priority:  models.PriorityLowest,
		StartTime: 100,
		EndTime:   200,
		OwnerIDs:  models.NewUserSet(owners...),
		Status:    models.TaskTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func userValues(u *models.User) []any {
	return []any{u.ID, u.Phone, u.Password, u.Name, u.Email, u.Avatar, u.Sex, u.Status, u.CreatedAt, u.UpdatedAt}
}

func teamValues(t *models.Team) []any {
	return []any{t.ID, t.Name, t.CreatorID, t.Members, t.Status, t.CreatedAt, t.UpdatedAt}
}

func projectValues(p *models.Project) []any {
	return []any{p.ID, p.Name, p.TeamID, p.Status, p.CreatedAt}
}

func taskValues(k *models.Task) []any {
	return []any{
		k.ID, k.Title, k.Content, k.ProjectID, k.CreatorID, k.ProcessTypeID, k.Priority,
		k.StartTime, k.EndTime, k.ReviewerID, k.OwnerIDs, k.Status, k.DoneTaskTime,
		k.ApprovedTaskTime, k.CreatedAt, k.UpdatedAt,
	}
}

func concat(cols ...[]string) []string {
	var out []string
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

func expectResolveTeam(mock pgxmock.PgxPoolIface, team *models.Team) {
	mock.ExpectQuery(resolveTeamQuery).
		WithArgs(team.ID).
		WillReturnRows(pgxmock.NewRows(teamCols).AddRow(teamValues(team)...))
}

func expectResolveProject(mock pgxmock.PgxPoolIface, project *models.Project, team *models.Team) {
	values := append(projectValues(project), teamValues(team)...)
	mock.ExpectQuery(resolveProjectQuery).
		WithArgs(project.ID).
		WillReturnRows(pgxmock.NewRows(concat(projectCols, teamCols)).AddRow(values...))
}

func expectResolveTask(mock pgxmock.PgxPoolIface, task *models.Task, project *models.Project, team *models.Team) {
	values := append(taskValues(task), projectValues(project)...)
	values = append(values, teamValues(team)...)
	mock.ExpectQuery(resolveTaskQuery).
		WithArgs(task.ID).
		WillReturnRows(pgxmock.NewRows(concat(taskCols, projectCols, teamCols)).AddRow(values...))
}
