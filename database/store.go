package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"proofsheet/config"
	"proofsheet/models"
)

// Store is the persistence contract shared by the PostgreSQL and SQLite
// backends. Every mutation is a single statement keyed by id or token.
type Store interface {
	CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	GetProjectByToken(ctx context.Context, token string) (*models.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	SetToken(ctx context.Context, projectID uuid.UUID, token string) (*models.Project, error)
	RecordSelection(ctx context.Context, token string, selected []string) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID uuid.UUID) error

	CreateUser(ctx context.Context, email, passwordHash, role string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	Migrate(ctx context.Context) error
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLiteDB)(nil)
)

// Open connects to the backend selected by cfg.DatabaseDriver and applies
// migrations.
func Open(cfg *config.Config) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		store Store
		err   error
	)
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		store, err = Connect(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		store, err = OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}
