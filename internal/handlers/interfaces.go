package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/internal/sse"
	"github.com/dimitrije/tasker-api/internal/workflow"
	"github.com/google/uuid"
)

// AuthServiceInterface defines the methods used by handlers from AuthService
type AuthServiceInterface interface {
	LoginOrRegister(ctx context.Context, phone, password string) (*models.User, bool, error)
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, upd services.UserUpdate) (*models.User, error)
	Search(ctx context.Context, keyword string) ([]models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, phone string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string, members []uuid.UUID) (*models.Team, error)
	Get(ctx context.Context, uid, teamID uuid.UUID) (*models.Team, error)
	ListForUser(ctx context.Context, uid uuid.UUID) ([]models.Team, error)
	Update(ctx context.Context, uid, teamID uuid.UUID, upd services.TeamUpdate) (*models.Team, error)
	Delete(ctx context.Context, uid, teamID uuid.UUID) error
	Members(ctx context.Context, uid, teamID uuid.UUID) ([]models.User, error)
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.Project, error)
	Get(ctx context.Context, uid, projectID uuid.UUID) (*models.ProjectSummary, error)
	List(ctx context.Context, uid, teamID uuid.UUID, status models.ProjectStatus) ([]models.ProjectSummary, error)
	Update(ctx context.Context, uid, projectID uuid.UUID, name string) (*models.Project, error)
	UpdateStatus(ctx context.Context, uid, projectID uuid.UUID, status models.ProjectStatus) (*models.Project, error)
	Delete(ctx context.Context, uid, projectID uuid.UUID) error
	Summary(ctx context.Context, uid, projectID uuid.UUID, mine bool) ([]models.DailyCount, error)
	UserStats(ctx context.Context, uid, projectID uuid.UUID) (*models.UserTaskStats, error)
}

// ProcessTypeServiceInterface defines the methods used by handlers from ProcessTypeService
type ProcessTypeServiceInterface interface {
	Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.ProcessType, error)
	List(ctx context.Context, uid, teamID uuid.UUID) ([]models.ProcessType, error)
	Delete(ctx context.Context, uid uuid.UUID, id int64) error
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, uid uuid.UUID, in services.TaskInput) (*models.Task, error)
	Get(ctx context.Context, uid, taskID uuid.UUID) (*models.Task, error)
	List(ctx context.Context, uid, projectID uuid.UUID, filter workflow.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, uid, taskID uuid.UUID, upd services.TaskUpdate) (*models.Task, error)
	UpdateStatus(ctx context.Context, uid, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, uid, taskID uuid.UUID) error
}

// NoticeServiceInterface defines the methods used by handlers from TaskLogService
type NoticeServiceInterface interface {
	ListForReceiver(ctx context.Context, uid, teamID uuid.UUID) ([]models.TaskLog, error)
}

// SearchServiceInterface defines the methods used by handlers from SearchService
type SearchServiceInterface interface {
	Search(ctx context.Context, uid uuid.UUID, keyword, kind string) (*services.SearchResult, error)
}

// UploadServiceInterface defines the methods used by handlers from UploadService
type UploadServiceInterface interface {
	Save(header *multipart.FileHeader) (*services.UploadedFile, error)
}

// NoticeHubInterface defines the methods used by handlers from the notice hub
type NoticeHubInterface interface {
	Register(client *sse.Client)
	Unregister(client *sse.Client)
}
