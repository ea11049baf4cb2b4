// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"blogapi/auth/models"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create inserts a new user. A duplicate phone number surfaces as a
	// wrapped unique-violation error.
	Create(ctx context.Context, user *models.User) error

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByPhoneNumber retrieves a user by phone number
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateInfo updates the user's name fields
	UpdateInfo(ctx context.Context, user *models.User) error

	// TouchLastLogin stamps the last successful login time
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
