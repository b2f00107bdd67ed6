package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"proofsheet/models"
)

func (s *SQLiteDB) CreateUser(ctx context.Context, email, passwordHash, role string) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, email, password_hash, role, created_at
	`

	var user *models.User
	err := retryOnBusy(ctx, func() error {
		var scanErr error
		user, scanErr = scanSQLiteUser(s.db.QueryRowContext(ctx, query,
			uuid.New().String(), email, passwordHash, role, time.Now().UnixNano()))
		return scanErr
	})
	if err != nil {
		if isSQLiteUnique(err) {
			return nil, fmt.Errorf("user %s: %w", email, models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Created user: %s (ID: %s)", user.Email, user.ID)
	return user, nil
}

func (s *SQLiteDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = ?
	`

	user, err := scanSQLiteUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil, fmt.Errorf("user %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SQLiteDB) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func scanSQLiteUser(row rowScanner) (*models.User, error) {
	var (
		user      models.User
		createdAt int64
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = time.Unix(0, createdAt).UTC()
	return &user, nil
}
