package testutil

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
	"github.com/dimitrije/tasker-api/internal/sse"
	"github.com/dimitrije/tasker-api/internal/workflow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginOrRegister(ctx context.Context, phone, password string) (*models.User, bool, error) {
	args := m.Called(ctx, phone, password)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, upd services.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, keyword string) ([]models.User, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, phone string) (*services.TokenPair, error) {
	args := m.Called(userID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, creatorID uuid.UUID, name string, members []uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, creatorID, name, members)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, uid, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, uid, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) ListForUser(ctx context.Context, uid uuid.UUID) ([]models.Team, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *MockTeamService) Update(ctx context.Context, uid, teamID uuid.UUID, upd services.TeamUpdate) (*models.Team, error) {
	args := m.Called(ctx, uid, teamID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, uid, teamID uuid.UUID) error {
	args := m.Called(ctx, uid, teamID)
	return args.Error(0)
}

func (m *MockTeamService) Members(ctx context.Context, uid, teamID uuid.UUID) ([]models.User, error) {
	args := m.Called(ctx, uid, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.Project, error) {
	args := m.Called(ctx, uid, teamID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, uid, projectID uuid.UUID) (*models.ProjectSummary, error) {
	args := m.Called(ctx, uid, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectSummary), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, uid, teamID uuid.UUID, status models.ProjectStatus) ([]models.ProjectSummary, error) {
	args := m.Called(ctx, uid, teamID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectSummary), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, uid, projectID uuid.UUID, name string) (*models.Project, error) {
	args := m.Called(ctx, uid, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) UpdateStatus(ctx context.Context, uid, projectID uuid.UUID, status models.ProjectStatus) (*models.Project, error) {
	args := m.Called(ctx, uid, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, uid, projectID uuid.UUID) error {
	args := m.Called(ctx, uid, projectID)
	return args.Error(0)
}

func (m *MockProjectService) Summary(ctx context.Context, uid, projectID uuid.UUID, mine bool) ([]models.DailyCount, error) {
	args := m.Called(ctx, uid, projectID, mine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyCount), args.Error(1)
}

func (m *MockProjectService) UserStats(ctx context.Context, uid, projectID uuid.UUID) (*models.UserTaskStats, error) {
	args := m.Called(ctx, uid, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserTaskStats), args.Error(1)
}

// MockProcessTypeService mocks the ProcessTypeService
type MockProcessTypeService struct {
	mock.Mock
}

func (m *MockProcessTypeService) Create(ctx context.Context, uid, teamID uuid.UUID, name string) (*models.ProcessType, error) {
	args := m.Called(ctx, uid, teamID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProcessType), args.Error(1)
}

func (m *MockProcessTypeService) List(ctx context.Context, uid, teamID uuid.UUID) ([]models.ProcessType, error) {
	args := m.Called(ctx, uid, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProcessType), args.Error(1)
}

func (m *MockProcessTypeService) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	args := m.Called(ctx, uid, id)
	return args.Error(0)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, uid uuid.UUID, in services.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, uid, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, uid, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, uid, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, uid, projectID uuid.UUID, filter workflow.TaskFilter) ([]models.Task, error) {
	args := m.Called(ctx, uid, projectID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, uid, taskID uuid.UUID, upd services.TaskUpdate) (*models.Task, error) {
	args := m.Called(ctx, uid, taskID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, uid, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	args := m.Called(ctx, uid, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, uid, taskID uuid.UUID) error {
	args := m.Called(ctx, uid, taskID)
	return args.Error(0)
}

// MockNoticeService mocks the TaskLogService
type MockNoticeService struct {
	mock.Mock
}

func (m *MockNoticeService) ListForReceiver(ctx context.Context, uid, teamID uuid.UUID) ([]models.TaskLog, error) {
	args := m.Called(ctx, uid, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskLog), args.Error(1)
}

// MockSearchService mocks the SearchService
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, uid uuid.UUID, keyword, kind string) (*services.SearchResult, error) {
	args := m.Called(ctx, uid, keyword, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SearchResult), args.Error(1)
}

// MockUploadService mocks the UploadService
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Save(header *multipart.FileHeader) (*services.UploadedFile, error) {
	args := m.Called(header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadedFile), args.Error(1)
}

// MockNoticeHub mocks the notice hub
type MockNoticeHub struct {
	mock.Mock
}

func (m *MockNoticeHub) Register(client *sse.Client) {
	m.Called(client)
}

func (m *MockNoticeHub) Unregister(client *sse.Client) {
	m.Called(client)
}
