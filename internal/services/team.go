package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxTeamNameLength = 16

type TeamService struct {
	db     *database.DB
	access *AccessService
	users  *UserService
}

func NewTeamService(db *database.DB, access *AccessService, users *UserService) *TeamService {
	return &TeamService{db: db, access: access, users: users}
}

// TeamUpdate carries optional changes. Members replaces the whole set.
type TeamUpdate struct {
	Name    *string
	Members *[]uuid.UUID
}

func (s *TeamService) Create(ctx context.Context, creatorID uuid.UUID, name string, members []uuid.UUID) (*models.Team, error) {
	name, err := normalizeName(name, maxTeamNameLength)
	if err != nil {
		return nil, err
	}

	set := models.NewUserSet(members...).Remove(creatorID)
	if err := s.ensureUsersExist(ctx, set); err != nil {
		return nil, err
	}

	var team models.Team
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, creator_id, members, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, creator_id, members, status, created_at, updated_at
	`, name, creatorID, set, models.TeamActive).Scan(teamDest(&team)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return &team, nil
}

// Get returns the team when uid may see it.
func (s *TeamService) Get(ctx context.Context, uid, teamID uuid.UUID) (*models.Team, error) {
	return s.access.ResolveTeam(ctx, uid, teamID)
}

// ListForUser returns the active teams uid created or belongs to.
func (s *TeamService) ListForUser(ctx context.Context, uid uuid.UUID) ([]models.Team, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+teamColumns+`
		FROM teams t
		WHERE t.status = $1 AND (t.creator_id = $2 OR $2 = ANY(t.members))
		ORDER BY t.created_at DESC
	`, models.TeamActive, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(teamDest(&team)...); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// Update renames the team or replaces its members. Only the creator may.
func (s *TeamService) Update(ctx context.Context, uid, teamID uuid.UUID, upd TeamUpdate) (*models.Team, error) {
	team, err := s.access.ResolveTeam(ctx, uid, teamID)
	if err != nil {
		return nil, err
	}
	if team.CreatorID != uid {
		return nil, ErrNotTeamCreator
	}

	name := team.Name
	if upd.Name != nil {
		if name, err = normalizeName(*upd.Name, maxTeamNameLength); err != nil {
			return nil, err
		}
	}
	members := team.Members
	if upd.Members != nil {
		members = models.NewUserSet(*upd.Members...).Remove(team.CreatorID)
		if err := s.ensureUsersExist(ctx, members); err != nil {
			return nil, err
		}
	}

	var updated models.Team
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE teams SET name = $1, members = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, creator_id, members, status, created_at, updated_at
	`, name, members, teamID).Scan(teamDest(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return &updated, nil
}

// Delete bans the team. Only the creator may.
func (s *TeamService) Delete(ctx context.Context, uid, teamID uuid.UUID) error {
	team, err := s.access.ResolveTeam(ctx, uid, teamID)
	if err != nil {
		return err
	}
	if team.CreatorID != uid {
		return ErrNotTeamCreator
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE teams SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.TeamBanned, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// Members returns the creator and every member of the team.
func (s *TeamService) Members(ctx context.Context, uid, teamID uuid.UUID) ([]models.User, error) {
	team, err := s.access.ResolveTeam(ctx, uid, teamID)
	if err != nil {
		return nil, err
	}
	return s.users.GetMany(ctx, team.Roster())
}

func (s *TeamService) ensureUsersExist(ctx context.Context, ids models.UserSet) error {
	if len(ids) == 0 {
		return nil
	}
	var n int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE id = ANY($1)
	`, ids).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check members: %w", err)
	}
	if n != len(ids) {
		return ErrUnknownMember
	}
	return nil
}

func normalizeName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxLen {
		return "", &Error{Kind: ErrBadRequest, Msg: fmt.Sprintf("name is required and must be at most %d characters", maxLen)}
	}
	return name, nil
}
