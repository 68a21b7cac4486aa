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

const maxProcessTypeNameLength = 10

// ProcessTypeService manages the per-team vocabulary of task process types.
type ProcessTypeService struct {
	db     *database.DB
	access *AccessService
}

func NewProcessTypeService(db *database.DB, access *AccessService) *ProcessTypeService {
	return &ProcessTypeService{db: db, access: access}
}

func (s *ProcessTypeService) Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.ProcessType, error) {
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return nil, err
	}
	name, err := normalizeName(name, maxProcessTypeNameLength)
	if err != nil {
		return nil, err
	}

	var pt models.ProcessType
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO process_types (name, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, name, team_id, status, created_at
	`, name, teamID, models.ProcessTypeActive).Scan(&pt.ID, &pt.Name, &pt.TeamID, &pt.Status, &pt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create process type: %w", err)
	}
	return &pt, nil
}

func (s *ProcessTypeService) List(ctx context.Context, uid, teamID uuid.UUID) ([]models.ProcessType, error) {
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, team_id, status, created_at
		FROM process_types
		WHERE team_id = $1 AND status = $2
		ORDER BY id
	`, teamID, models.ProcessTypeActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list process types: %w", err)
	}
	defer rows.Close()

	types := []models.ProcessType{}
	for rows.Next() {
		var pt models.ProcessType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.TeamID, &pt.Status, &pt.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}

// Delete bans the process type after checking the caller belongs to its team.
func (s *ProcessTypeService) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	teamID, err := s.activeTeamOf(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.access.ResolveTeam(ctx, uid, teamID); err != nil {
		return err
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE process_types SET status = $1 WHERE id = $2
	`, models.ProcessTypeBanned, id)
	if err != nil {
		return fmt.Errorf("failed to delete process type: %w", err)
	}
	return nil
}

// EnsureInTeam fails with BadRequest unless id is an active process type of teamID.
func (s *ProcessTypeService) EnsureInTeam(ctx context.Context, id int64, teamID uuid.UUID) error {
	owner, err := s.activeTeamOf(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProcessTypeNotFound) {
			return badRequest("unknown process type")
		}
		return err
	}
	if owner != teamID {
		return badRequest("unknown process type")
	}
	return nil
}

func (s *ProcessTypeService) activeTeamOf(ctx context.Context, id int64) (uuid.UUID, error) {
	var teamID uuid.UUID
	var status models.ProcessTypeStatus
	err := s.db.Pool.QueryRow(ctx, `
		SELECT team_id, status FROM process_types WHERE id = $1
	`, id).Scan(&teamID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrProcessTypeNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to load process type: %w", err)
	}
	if status == models.ProcessTypeBanned {
		return uuid.Nil, ErrProcessTypeNotFound
	}
	return teamID, nil
}
