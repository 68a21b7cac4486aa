package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates an active test user whose password is TestPassword
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Phone:    fmt.Sprintf("+1555%07d", f.counter),
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Status:   models.UserActive,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (phone, password, name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, user.Phone, user.Password, user.Name, user.Status).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithPhone sets the user's phone
func WithPhone(phone string) UserOption {
	return func(u *models.User) {
		u.Phone = phone
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// Banned creates the user in the banned state
func Banned() UserOption {
	return func(u *models.User) {
		u.Status = models.UserBanned
	}
}

// CreateTeam creates an active team owned by creator with the given members
func (f *Fixtures) CreateTeam(t *testing.T, creator *models.User, members ...*models.User) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name:      fmt.Sprintf("Team %d", f.counter),
		CreatorID: creator.ID,
		Members:   models.NewUserSet(),
		Status:    models.TeamActive,
	}
	for _, m := range members {
		team.Members = team.Members.Add(m.ID)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO teams (name, creator_id, members, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, team.Name, team.CreatorID, team.Members, team.Status).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	return team
}

// CreateProject creates a project in team with the given status
func (f *Fixtures) CreateProject(t *testing.T, team *models.Team, status models.ProjectStatus) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Name:   fmt.Sprintf("Project %d", f.counter),
		TeamID: team.ID,
		Status: status,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, project.Name, project.TeamID, project.Status).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// CreateTask creates a task in project
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, creator *models.User, opts ...TaskOption) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		Title:     fmt.Sprintf("Task %d", f.counter),
		ProjectID: project.ID,
		CreatorID: creator.ID,
		Priority:  models.PriorityLowest,
		OwnerIDs:  models.NewUserSet(),
		Status:    models.TaskTodo,
	}

	for _, opt := range opts {
		opt(task)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (title, project_id, creator_id, priority, reviewer_id, owner_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, task.Title, task.ProjectID, task.CreatorID, task.Priority, task.ReviewerID, task.OwnerIDs, task.Status).Scan(
		&task.ID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// TaskOption configures a test task
type TaskOption func(*models.Task)

// WithOwners assigns the task to users
func WithOwners(users ...*models.User) TaskOption {
	return func(task *models.Task) {
		for _, u := range users {
			task.OwnerIDs = task.OwnerIDs.Add(u.ID)
		}
	}
}

// WithReviewer sets the task reviewer
func WithReviewer(user *models.User) TaskOption {
	return func(task *models.Task) {
		id := user.ID
		task.ReviewerID = &id
	}
}

// WithStatus sets the task status
func WithStatus(status models.TaskStatus) TaskOption {
	return func(task *models.Task) {
		task.Status = status
	}
}

// CreateRefreshToken stores a refresh token hash for a user
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()
	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
