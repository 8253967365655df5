package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloksy/cloksy-backend/internal/timesheet/migrations"
	"github.com/cloksy/cloksy-backend/pkg/database"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

var (
	// shared across every integration test in the binary
	globalContainer *PostgresContainer
	containerOnce   sync.Once
	containerErr    error
)

// IntegrationSuite is a migrated PostgreSQL database for integration tests.
//
// Usage:
//
//	var suite *testutil.IntegrationSuite
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//	    suite, err = testutil.NewIntegrationSuite(ctx)
//	    ...
//	    code := m.Run()
//	    testutil.TerminateContainer(ctx)
//	    os.Exit(code)
//	}
type IntegrationSuite struct {
	Container *PostgresContainer
	DB        *database.DB
	Fixtures  *FixtureFactory
	Logger    *logger.Logger
}

// NewIntegrationSuite starts (or reuses) the container and applies the migrations
func NewIntegrationSuite(ctx context.Context) (*IntegrationSuite, error) {
	containerOnce.Do(func() {
		globalContainer, containerErr = NewPostgresContainer(ctx, DefaultPostgresConfig())
	})
	if containerErr != nil {
		return nil, containerErr
	}

	log := logger.Nop()
	db, err := database.NewWithDSN(globalContainer.DSN, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		db.Close()
		return nil, err
	}

	return &IntegrationSuite{
		Container: globalContainer,
		DB:        db,
		Fixtures:  NewFixtureFactory(),
		Logger:    log,
	}, nil
}

// Reset empties every table
func (s *IntegrationSuite) Reset(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `TRUNCATE projects, time_logs, holidays, pto_requests`)
	if err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	return nil
}

// Close releases the suite's connection pool
func (s *IntegrationSuite) Close() error {
	return s.DB.Close()
}

// TerminateContainer stops the shared container. Call it once from TestMain.
func TerminateContainer(ctx context.Context) {
	if globalContainer != nil {
		globalContainer.Terminate(ctx)
	}
}
