package services

import (
	"context"
	"testing"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccessService(t *testing.T) (*AccessService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := setupMockDB(t)
	return NewAccessService(db), mock
}

func TestAccessService_ResolveTeam_Member(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator, member := uuid.New(), uuid.New()
	team := newTeam(creator, member)

	expectResolveTeam(mock, team)

	got, err := svc.ResolveTeam(context.Background(), member, team.ID)

	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTeam_CreatorCountsAsMember(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)

	expectResolveTeam(mock, team)

	_, err := svc.ResolveTeam(context.Background(), creator, team.ID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTeam_NotMember(t *testing.T) {
	svc, mock := setupAccessService(t)
	team := newTeam(uuid.New(), uuid.New())

	expectResolveTeam(mock, team)

	_, err := svc.ResolveTeam(context.Background(), uuid.New(), team.ID)

	assert.ErrorIs(t, err, ErrNotTeamMember)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTeam_Banned(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	team.Status = models.TeamBanned

	expectResolveTeam(mock, team)

	_, err := svc.ResolveTeam(context.Background(), creator, team.ID)

	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTeam_Missing(t *testing.T) {
	svc, mock := setupAccessService(t)
	teamID := uuid.New()

	mock.ExpectQuery(resolveTeamQuery).
		WithArgs(teamID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ResolveTeam(context.Background(), uuid.New(), teamID)

	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTeam_DatabaseError(t *testing.T) {
	svc, mock := setupAccessService(t)
	teamID := uuid.New()

	mock.ExpectQuery(resolveTeamQuery).
		WithArgs(teamID).
		WillReturnError(assert.AnError)

	_, err := svc.ResolveTeam(context.Background(), uuid.New(), teamID)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveProject(t *testing.T) {
	svc, mock := setupAccessService(t)
	member := uuid.New()
	team := newTeam(uuid.New(), member)
	project := newProject(team, models.ProjectArchived)

	expectResolveProject(mock, project, team)

	pa, err := svc.ResolveProject(context.Background(), member, project.ID)

	require.NoError(t, err)
	assert.Equal(t, project.ID, pa.Project.ID)
	assert.Equal(t, team.ID, pa.Team.ID)
	assert.ErrorIs(t, pa.EnsureWritable(), ErrProjectArchived)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveProject_Banned(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	project := newProject(team, models.ProjectBanned)

	expectResolveProject(mock, project, team)

	_, err := svc.ResolveProject(context.Background(), creator, project.ID)

	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveProject_Missing(t *testing.T) {
	svc, mock := setupAccessService(t)
	projectID := uuid.New()

	mock.ExpectQuery(resolveProjectQuery).
		WithArgs(projectID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ResolveProject(context.Background(), uuid.New(), projectID)

	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveProject_NotMember(t *testing.T) {
	svc, mock := setupAccessService(t)
	team := newTeam(uuid.New())
	project := newProject(team, models.ProjectActive)

	expectResolveProject(mock, project, team)

	_, err := svc.ResolveProject(context.Background(), uuid.New(), project.ID)

	assert.ErrorIs(t, err, ErrNotTeamMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTask(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	project := newProject(team, models.ProjectActive)
	task := newTask(project, creator)

	expectResolveTask(mock, task, project, team)

	ta, err := svc.ResolveTask(context.Background(), creator, task.ID)

	require.NoError(t, err)
	assert.Equal(t, task.ID, ta.Task.ID)
	assert.Equal(t, project.ID, ta.Project.ID)
	assert.NoError(t, ta.EnsureWritable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTask_Missing(t *testing.T) {
	svc, mock := setupAccessService(t)
	taskID := uuid.New()

	mock.ExpectQuery(resolveTaskQuery).
		WithArgs(taskID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ResolveTask(context.Background(), uuid.New(), taskID)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTask_Deleted(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	project := newProject(team, models.ProjectActive)
	task := newTask(project, creator)
	task.Status = models.TaskBan

	expectResolveTask(mock, task, project, team)

	_, err := svc.ResolveTask(context.Background(), creator, task.ID)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTask_BannedProject(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	project := newProject(team, models.ProjectBanned)
	task := newTask(project, creator)

	expectResolveTask(mock, task, project, team)

	_, err := svc.ResolveTask(context.Background(), creator, task.ID)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessService_ResolveTask_NotMember(t *testing.T) {
	svc, mock := setupAccessService(t)
	creator := uuid.New()
	team := newTeam(creator)
	project := newProject(team, models.ProjectActive)
	task := newTask(project, creator)

	expectResolveTask(mock, task, project, team)

	_, err := svc.ResolveTask(context.Background(), uuid.New(), task.ID)

	assert.ErrorIs(t, err, ErrNotTeamMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsTeamMember(t *testing.T) {
	creator, member := uuid.New(), uuid.New()
	team := newTeam(creator, member)

	assert.True(t, IsTeamMember(creator, team))
	assert.True(t, IsTeamMember(member, team))
	assert.False(t, IsTeamMember(uuid.New(), team))
	assert.False(t, IsTeamMember(creator, nil))
}
