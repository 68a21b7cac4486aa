package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTeamService(t *testing.T) (*TeamService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := setupMockDB(t)
	return NewTeamService(db, NewAccessService(db), NewUserService(db)), mock
}

func TestTeamService_Create(t *testing.T) {
	svc, mock := setupTeamService(t)
	ctx := context.Background()
	creator, member := uuid.New(), uuid.New()
	team := newTeam(creator, member)

	mock.ExpectQuery(`SELECT COUNT.+FROM users WHERE id = ANY`).
		WithArgs(models.UserSet{member}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("core", creator, models.UserSet{member}, models.TeamActive).
		WillReturnRows(pgxmock.NewRows(teamCols).AddRow(teamValues(team)...))

	// The creator is dropped from members and surrounding spaces are trimmed.
	got, err := svc.Create(ctx, creator, "  core ", []uuid.UUID{member, creator, member})

	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)
	assert.Equal(t, creator, got.CreatorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Create_NoMembers(t *testing.T) {
	svc, mock := setupTeamService(t)
	creator := uuid.New()
	team := newTeam(creator)

	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("core", creator, models.UserSet{}, models.TeamActive).
		WillReturnRows(pgxmock.NewRows(teamCols).AddRow(teamValues(team)...))

	_, err := svc.Create(context.Background(), creator, "core", nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Create_InvalidName(t *testing.T) {
	svc, mock := setupTeamService(t)

	for _, name := range []string{"", "   ", strings.Repeat("x", maxTeamNameLength+1)} {
		_, err := svc.Create(context.Background(), uuid.New(), name, nil)
		assert.ErrorIs(t, err, ErrBadRequest, "name %q", name)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Create_UnknownMember(t *testing.T) {
	svc, mock := setupTeamService(t)
	member := uuid.New()

	mock.ExpectQuery(`SELECT COUNT.+FROM users WHERE id = ANY`).
		WithArgs(models.UserSet{member}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(context.Background(), uuid.New(), "core", []uuid.UUID{member})

	assert.ErrorIs(t, err, ErrUnknownMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_ListForUser(t *testing.T) {
	svc, mock := setupTeamService(t)
	uid := uuid.New()
	own := newTeam(uid)
	joined := newTeam(uuid.New(), uid)

	mock.ExpectQuery(`FROM teams t WHERE t.status`).
		WithArgs(models.TeamActive, uid).
		WillReturnRows(pgxmock.NewRows(teamCols).
			AddRow(teamValues(own)...).
			AddRow(teamValues(joined)...))

	teams, err := svc.ListForUser(context.Background(), uid)

	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, own.ID, teams[0].ID)
	assert.Equal(t, joined.ID, teams[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_ListForUser_Empty(t *testing.T) {
	svc, mock := setupTeamService(t)
	uid := uuid.New()

	mock.ExpectQuery(`FROM teams t WHERE t.status`).
		WithArgs(models.TeamActive, uid).
		WillReturnRows(pgxmock.NewRows(teamCols))

	teams, err := svc.ListForUser(context.Background(), uid)

	require.NoError(t, err)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Update_Name(t *testing.T) {
	svc, mock := setupTeamService(t)
	creator := uuid.New()
	team := newTeam(creator, uuid.New())
	renamed := *team
	renamed.Name = "platform"
	name := "platform"

	expectResolveTeam(mock, team)
	mock.ExpectQuery(`UPDATE teams SET name`).
		WithArgs("platform", team.Members, team.ID).
		WillReturnRows(pgxmock.NewRows(teamCols).AddRow(teamValues(&renamed)...))

	got, err := svc.Update(context.Background(), creator, team.ID, TeamUpdate{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "platform", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Update_Members(t *testing.T) {
	svc, mock := setupTeamService(t)
	creator, newcomer := uuid.New(), uuid.New()
	team := newTeam(creator, uuid.New())
	members := []uuid.UUID{newcomer}
	updated := *team
	updated.Members = models.UserSet{newcomer}

	expectResolveTeam(mock, team)
	mock.ExpectQuery(`SELECT COUNT.+FROM users WHERE id = ANY`).
		WithArgs(models.UserSet{newcomer}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`UPDATE teams SET name`).
		WithArgs(team.Name, models.UserSet{newcomer}, team.ID).
		WillReturnRows(pgxmock.NewRows(teamCols).AddRow(teamValues(&updated)...))

	got, err := svc.Update(context.Background(), creator, team.ID, TeamUpdate{Members: &members})

	require.NoError(t, err)
	assert.Equal(t, models.UserSet{newcomer}, got.Members)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Update_NotCreator(t *testing.T) {
	svc, mock := setupTeamService(t)
	member := uuid.New()
	team := newTeam(uuid.New(), member)
	name := "platform"

	expectResolveTeam(mock, team)

	_, err := svc.Update(context.Background(), member, team.ID, TeamUpdate{Name: &name})

	assert.ErrorIs(t, err, ErrNotTeamCreator)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Delete(t *testing.T) {
	svc, mock := setupTeamService(t)
	creator := uuid.New()
	team := newTeam(creator)

	expectResolveTeam(mock, team)
	mock.ExpectExec(`UPDATE teams SET status`).
		WithArgs(models.TeamBanned, team.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.Delete(context.Background(), creator, team.ID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Delete_NotCreator(t *testing.T) {
	svc, mock := setupTeamService(t)
	member := uuid.New()
	team := newTeam(uuid.New(), member)

	expectResolveTeam(mock, team)

	err := svc.Delete(context.Background(), member, team.ID)

	assert.ErrorIs(t, err, ErrNotTeamCreator)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Members(t *testing.T) {
	svc, mock := setupTeamService(t)
	creator := newUser("+15550101")
	member := newUser("+15550102")
	team := newTeam(creator.ID, member.ID)

	expectResolveTeam(mock, team)
	mock.ExpectQuery(`FROM users WHERE id = ANY`).
		WithArgs([]uuid.UUID(team.Roster())).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(userValues(creator)...).
			AddRow(userValues(member)...))

	users, err := svc.Members(context.Background(), member.ID, team.ID)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, creator.ID, users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
