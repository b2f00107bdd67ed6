package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"proofsheet/models"
)

func (db *DB) CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf(`
		INSERT INTO projects (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULL, '[]', $4)
		RETURNING %s
	`, columnID, columnName, columnStatus, columnToken, columnSelected, columnOwnerID, projectColumns)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, uuid.New(), name, string(models.StatusNew), ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Created project: %s (ID: %s)", project.Name, project.ID)
	return project, nil
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s = $1`, projectColumns, columnID)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		return nil, notFound(err, "failed to get project")
	}
	return project, nil
}

func (db *DB) GetProjectByToken(ctx context.Context, token string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s = $1`, projectColumns, columnToken)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, notFound(err, "failed to get project by token")
	}
	return project, nil
}

// ListProjects returns matching projects, newest first.
func (db *DB) ListProjects(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	start := time.Now()
	defer func() {
		log.Printf("ListProjects: duration=%v filters=[owner=%s status=%s]",
			time.Since(start), filter.OwnerID, filter.Status)
	}()

	qb := NewQueryBuilder(dollarPlaceholder)
	qb.AddFilter(filter, func(id uuid.UUID) interface{} { return id })

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		%s
		ORDER BY %s DESC
		%s
	`, projectColumns, qb.WhereClause(), columnCreatedAt, qb.LimitClause(filter.Limit))

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows, scanProject)
}

func (db *DB) ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	return db.ListProjects(ctx, ProjectFilter{OwnerID: ownerID})
}

// SetToken stores a fresh share token and moves the project under selection
// in a single statement.
func (db *DB) SetToken(ctx context.Context, projectID uuid.UUID, token string) (*models.Project, error) {
	query := fmt.Sprintf(`
		UPDATE projects
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
		RETURNING %s
	`, columnToken, columnStatus, columnUpdatedAt, columnID, projectColumns)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, token, string(models.StatusUnderSelection), projectID))
	if err != nil {
		return nil, notFound(err, "failed to set project token")
	}

	log.Printf("Generated share token for project: %s", project.ID)
	return project, nil
}

// RecordSelection stores the client's selection and completes the project.
// The update is keyed by token so a link regenerated concurrently rejects
// the stale submission.
func (db *DB) RecordSelection(ctx context.Context, token string, selected []string) (*models.Project, error) {
	encoded, err := models.EncodeSelection(selected)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE projects
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3
		RETURNING %s
	`, columnSelected, columnStatus, columnUpdatedAt, columnToken, projectColumns)

	project, err := scanProject(db.Pool.QueryRow(ctx, query, encoded, string(models.StatusCompleted), token))
	if err != nil {
		return nil, notFound(err, "failed to record selection")
	}

	log.Printf("Recorded selection for project: %s count=%d", project.ID, len(project.Selected))
	return project, nil
}

func (db *DB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
	}

	log.Printf("Deleted project: %s", projectID)
	return nil
}

// Helper functions

func notFound(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, errNoRows) {
		return fmt.Errorf("project %w", models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project  models.Project
		status   string
		selected string
	)
	err := row.Scan(
		&project.ID,
		&project.Name,
		&status,
		&project.Token,
		&selected,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return finishProject(&project, status, selected)
}

func finishProject(project *models.Project, status, selected string) (*models.Project, error) {
	project.Status = models.Status(status)
	decoded, err := models.DecodeSelection(selected)
	if err != nil {
		return nil, err
	}
	project.Selected = decoded
	return project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner, scan func(rowScanner) (*models.Project, error)) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
