package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"proofsheet/models"
)

func (s *SQLiteDB) CreateProject(ctx context.Context, name string, ownerID uuid.UUID) (*models.Project, error) {
	now := time.Now().UnixNano()
	query := fmt.Sprintf(`
		INSERT INTO projects (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, NULL, '[]', ?, ?, ?)
		RETURNING %s
	`, columnID, columnName, columnStatus, columnToken, columnSelected, columnOwnerID,
		columnCreatedAt, columnUpdatedAt, projectColumns)

	project, err := s.queryProject(ctx, query,
		uuid.New().String(), name, string(models.StatusNew), ownerID.String(), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Created project: %s (ID: %s)", project.Name, project.ID)
	return project, nil
}

func (s *SQLiteDB) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s = ?`, projectColumns, columnID)

	project, err := s.queryProject(ctx, query, projectID.String())
	if err != nil {
		return nil, notFound(err, "failed to get project")
	}
	return project, nil
}

func (s *SQLiteDB) GetProjectByToken(ctx context.Context, token string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s = ?`, projectColumns, columnToken)

	project, err := s.queryProject(ctx, query, token)
	if err != nil {
		return nil, notFound(err, "failed to get project by token")
	}
	return project, nil
}

func (s *SQLiteDB) ListProjects(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	start := time.Now()
	defer func() {
		log.Printf("ListProjects: duration=%v filters=[owner=%s status=%s]",
			time.Since(start), filter.OwnerID, filter.Status)
	}()

	qb := NewQueryBuilder(questionPlaceholder)
	qb.AddFilter(filter, func(id uuid.UUID) interface{} { return id.String() })

	query := fmt.Sprintf(`
		SELECT %s
		FROM projects
		%s
		ORDER BY %s DESC, rowid DESC
		%s
	`, projectColumns, qb.WhereClause(), columnCreatedAt, qb.LimitClause(filter.Limit))

	rows, err := s.db.QueryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows, scanSQLiteProject)
}

func (s *SQLiteDB) ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	return s.ListProjects(ctx, ProjectFilter{OwnerID: ownerID})
}

func (s *SQLiteDB) SetToken(ctx context.Context, projectID uuid.UUID, token string) (*models.Project, error) {
	query := fmt.Sprintf(`
		UPDATE projects
		SET %s = ?, %s = ?, %s = ?
		WHERE %s = ?
		RETURNING %s
	`, columnToken, columnStatus, columnUpdatedAt, columnID, projectColumns)

	project, err := s.queryProject(ctx, query,
		token, string(models.StatusUnderSelection), time.Now().UnixNano(), projectID.String())
	if err != nil {
		return nil, notFound(err, "failed to set project token")
	}

	log.Printf("Generated share token for project: %s", project.ID)
	return project, nil
}

func (s *SQLiteDB) RecordSelection(ctx context.Context, token string, selected []string) (*models.Project, error) {
	encoded, err := models.EncodeSelection(selected)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE projects
		SET %s = ?, %s = ?, %s = ?
		WHERE %s = ?
		RETURNING %s
	`, columnSelected, columnStatus, columnUpdatedAt, columnToken, projectColumns)

	project, err := s.queryProject(ctx, query,
		encoded, string(models.StatusCompleted), time.Now().UnixNano(), token)
	if err != nil {
		return nil, notFound(err, "failed to record selection")
	}

	log.Printf("Recorded selection for project: %s count=%d", project.ID, len(project.Selected))
	return project, nil
}

func (s *SQLiteDB) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	result, err := s.execResult(ctx, `DELETE FROM projects WHERE id = ?`, projectID.String())
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
	}

	log.Printf("Deleted project: %s", projectID)
	return nil
}

func (s *SQLiteDB) queryProject(ctx context.Context, query string, args ...interface{}) (*models.Project, error) {
	var project *models.Project
	err := retryOnBusy(ctx, func() error {
		var scanErr error
		project, scanErr = scanSQLiteProject(s.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func scanSQLiteProject(row rowScanner) (*models.Project, error) {
	var (
		project   models.Project
		status    string
		token     sql.NullString
		selected  string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&project.ID,
		&project.Name,
		&status,
		&token,
		&selected,
		&project.OwnerID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if token.Valid {
		project.Token = &token.String
	}
	project.CreatedAt = time.Unix(0, createdAt).UTC()
	project.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return finishProject(&project, status, selected)
}
