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

const userColumns = `id, phone, password, name, email, avatar, sex, status, created_at, updated_at`

func userDest(u *models.User) []any {
	return []any{&u.ID, &u.Phone, &u.Password, &u.Name, &u.Email, &u.Avatar, &u.Sex, &u.Status, &u.CreatedAt, &u.UpdatedAt}
}

const defaultSearchLimit = 20

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// UserUpdate lists the profile fields a user may change. Nil fields are kept.
type UserUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
	Sex    *models.Sex
}

func (s *UserService) Create(ctx context.Context, phone, passwordHash, name string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (phone, password, name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		phone, passwordHash, name).Scan(userDest(&user)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id).Scan(userDest(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE phone = $1
	`, phone).Scan(userDest(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*models.User, error) {
	if upd.Sex != nil && !upd.Sex.Valid() {
		return nil, ErrInvalidSex
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" || len([]rune(name)) > 64 {
			return nil, ErrInvalidName
		}
		upd.Name = &name
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			avatar = COALESCE($4, avatar),
			sex = COALESCE($5, sex),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, upd.Name, upd.Email, upd.Avatar, upd.Sex).Scan(userDest(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// Search finds active users whose phone equals keyword or whose name
// contains it.
func (s *UserService) Search(ctx context.Context, keyword string) ([]models.User, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.User{}, nil
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE status = $1 AND (phone = $2 OR name ILIKE '%' || $2 || '%')
		ORDER BY name
		LIMIT $3
	`, models.UserActive, keyword, defaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// GetMany loads the given users, skipping ids that do not exist.
func (s *UserService) GetMany(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = ANY($1)
		ORDER BY created_at
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// SetStatus bans or re-activates the user with the given phone.
func (s *UserService) SetStatus(ctx context.Context, phone string, status models.UserStatus) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET status = $2, updated_at = NOW()
		WHERE phone = $1
		RETURNING `+userColumns,
		phone, status).Scan(userDest(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set user status: %w", err)
	}
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(userDest(&user)...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
