package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Tables in truncation order, children first.
var tables = []string{
	"refresh_tokens",
	"task_logs",
	"tasks",
	"process_types",
	"projects",
	"teams",
	"users",
}

// TestDB is a migrated Postgres shared by every test in one package.
type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

var (
	sharedOnce sync.Once
	shared     *TestDB
	sharedErr  error
)

// SetupTestDB returns the package's Postgres container, starting and
// migrating it on first use, with every table emptied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedOnce.Do(func() {
		shared, sharedErr = startPostgres(context.Background())
	})
	require.NoError(t, sharedErr, "postgres testcontainer")

	shared.CleanTables(t)
	return shared
}

func startPostgres(ctx context.Context) (*TestDB, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "tasker",
				"POSTGRES_PASSWORD": "tasker",
				"POSTGRES_DB":       "tasker_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("resolve endpoint: %w", err)
	}

	db, err := database.New(ctx, fmt.Sprintf("postgres://tasker:tasker@%s/tasker_test?sslmode=disable", endpoint))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestDB{DB: db, Container: container}, nil
}

// TeardownTestDB stops the shared container, if one was started. Call it
// from TestMain after m.Run.
func TeardownTestDB() {
	if shared == nil {
		return
	}
	shared.DB.Close()
	_ = shared.Container.Terminate(context.Background())
}

// CleanTables empties every table.
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()
	_, err := tdb.DB.Pool.Exec(context.Background(),
		"TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
