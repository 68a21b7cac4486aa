package services

import (
	"context"
	"testing"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSearchService(t *testing.T) (*SearchService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := setupMockDB(t)
	return NewSearchService(db), mock
}

func TestSearchService_All(t *testing.T) {
	svc, mock := setupSearchService(t)
	uid := uuid.New()
	team := newTeam(uid)
	project := newProject(team, models.ProjectActive)
	task := newTask(project, uid)

	mock.ExpectQuery(`FROM projects p JOIN teams t`).
		WithArgs(models.ProjectBanned, models.TeamActive, uid, "launch", defaultSearchLimit).
		WillReturnRows(pgxmock.NewRows(projectCols).AddRow(projectValues(project)...))
	mock.ExpectQuery(`FROM tasks k JOIN projects p`).
		WithArgs(models.TaskBan, models.ProjectBanned, models.TeamActive, uid, "launch", defaultSearchLimit).
		WillReturnRows(pgxmock.NewRows(taskCols).AddRow(taskValues(task)...))

	result, err := svc.Search(context.Background(), uid, " launch ", SearchAll)

	require.NoError(t, err)
	assert.Len(t, result.Projects, 1)
	assert.Len(t, result.Tasks, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchService_ProjectsOnly(t *testing.T) {
	svc, mock := setupSearchService(t)
	uid := uuid.New()

	mock.ExpectQuery(`FROM projects p JOIN teams t`).
		WithArgs(models.ProjectBanned, models.TeamActive, uid, "launch", defaultSearchLimit).
		WillReturnRows(pgxmock.NewRows(projectCols))

	result, err := svc.Search(context.Background(), uid, "launch", SearchProjects)

	require.NoError(t, err)
	assert.Empty(t, result.Projects)
	assert.NotNil(t, result.Tasks)
	assert.Empty(t, result.Tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchService_TasksOnly(t *testing.T) {
	svc, mock := setupSearchService(t)
	uid := uuid.New()

	mock.ExpectQuery(`FROM tasks k JOIN projects p`).
		WithArgs(models.TaskBan, models.ProjectBanned, models.TeamActive, uid, "notes", defaultSearchLimit).
		WillReturnRows(pgxmock.NewRows(taskCols))

	result, err := svc.Search(context.Background(), uid, "notes", SearchTasks)

	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchService_BlankKeyword(t *testing.T) {
	svc, mock := setupSearchService(t)

	result, err := svc.Search(context.Background(), uuid.New(), "   ", SearchAll)

	require.NoError(t, err)
	assert.Empty(t, result.Projects)
	assert.Empty(t, result.Tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchService_InvalidType(t *testing.T) {
	svc, mock := setupSearchService(t)

	_, err := svc.Search(context.Background(), uuid.New(), "launch", "3")

	assert.ErrorIs(t, err, ErrInvalidSearchType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchService_WildcardsMatchLiterally(t *testing.T) {
	svc, mock := setupSearchService(t)
	uid := uuid.New()

	mock.ExpectQuery(`FROM projects p JOIN teams t`).
		WithArgs(models.ProjectBanned, models.TeamActive, uid, `50\%\_off`, defaultSearchLimit).
		WillReturnRows(pgxmock.NewRows(projectCols))

	_, err := svc.Search(context.Background(), uid, "50%_off", SearchProjects)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"launch", "launch"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`C:\tmp`, `C:\\tmp`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}
