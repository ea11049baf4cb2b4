// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"blogapi/auth/models"
	"blogapi/internal/database/postgres"
)

// postgresUserRepository implements UserRepository using raw SQL queries
type postgresUserRepository struct {
	client *postgres.Client
}

// NewPostgresUserRepository creates a new PostgreSQL repository for users
func NewPostgresUserRepository(client *postgres.Client) UserRepository {
	return &postgresUserRepository{client: client}
}

func (r *postgresUserRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFromContext(ctx, r.client)
}

// Create inserts a new user
func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	query := `
		INSERT INTO users (id, phone_number, password_hash, first_name, last_name, system_role, created_at, updated_at)
		VALUES (:id, :phone_number, :password_hash, :first_name, :last_name, :system_role, :created_at, :updated_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by ID
func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, phone_number, password_hash, first_name, last_name, system_role, last_login, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return &user, nil
}

// FindByPhoneNumber retrieves a user by phone number
func (r *postgresUserRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error) {
	query := `
		SELECT id, phone_number, password_hash, first_name, last_name, system_role, last_login, created_at, updated_at
		FROM users
		WHERE phone_number = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &user, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find user by phone number: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash
func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}

	return nil
}

// UpdateInfo updates the user's name fields
func (r *postgresUserRepository) UpdateInfo(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET first_name = :first_name,
			last_name = :last_name,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, user)
	if err != nil {
		return fmt.Errorf("failed to update user info: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}

	return nil
}

// TouchLastLogin stamps the last successful login time
func (r *postgresUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login = $1 WHERE id = $2`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}
