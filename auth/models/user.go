// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
)

// User is an account identified by phone number. The password hash never
// leaves the server.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PhoneNumber  string     `db:"phone_number" json:"phone_number"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	SystemRole   string     `db:"system_role" json:"system_role"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName is the name shown on blogs and comments the user writes
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SignupRequest represents the request payload for registering
type SignupRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// LoginRequest represents the request payload for logging in
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// UpdatePasswordRequest represents the request payload for a password change
type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateUserInfoRequest represents the request payload for profile updates.
// The phone number is the account identity and cannot be changed.
type UpdateUserInfoRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// TokenPairResponse carries a freshly issued token pair
type TokenPairResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}
