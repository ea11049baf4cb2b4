// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	authErrors "blogapi/auth/errors"
	"blogapi/auth/models"
	"blogapi/auth/repository"
	"blogapi/auth/validation"
	"blogapi/internal/auth/tokens"
	"blogapi/internal/pkg/log"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/internal/types"
)

// AuthService defines the interface for account operations
type AuthService interface {
	// Signup registers a new user. The account is active immediately.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)

	// Login verifies credentials and issues an ES256 token pair
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPairResponse, error)

	// UpdatePassword changes the caller's password after verifying the
	// current one
	UpdatePassword(ctx context.Context, user *types.UserContext, req *models.UpdatePasswordRequest) error

	// UpdateUserInfo updates the caller's name fields. The phone number
	// is immutable.
	UpdateUserInfo(ctx context.Context, user *types.UserContext, req *models.UpdateUserInfoRequest) (*models.User, error)
}

// authService implements the AuthService interface
type authService struct {
	repo   repository.UserRepository
	config *platformconfig.Config
}

// NewAuthService creates a new instance of the auth service
func NewAuthService(repo repository.UserRepository, cfg *platformconfig.Config) AuthService {
	return &authService{
		repo:   repo,
		config: cfg,
	}
}

// Signup registers a new user
func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &models.User{
		ID:           userID,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		SystemRole:   types.UserRole,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", authErrors.ErrPhoneAlreadyRegistered, req.PhoneNumber)
		}
		return nil, fmt.Errorf("%w: %v", authErrors.ErrDatabaseOperation, err)
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. A missing account and
// a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPairResponse, error) {
	user, err := s.repo.FindByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		return nil, authErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, authErrors.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Warn("failed to stamp last login for user %s: %v", user.ID.String(), err)
	}

	return s.issueTokenPair(user)
}

// UpdatePassword changes the caller's password
func (s *authService) UpdatePassword(ctx context.Context, userCtx *types.UserContext, req *models.UpdatePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userCtx.UserID)
	if err != nil {
		return fmt.Errorf("%w: %s", authErrors.ErrUserNotFound, userCtx.UserID.String())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return authErrors.ErrWrongPassword
	}

	if req.NewPassword != req.ConfirmPassword {
		return authErrors.ErrPasswordMismatch
	}

	if err := validation.ValidatePassword(req.NewPassword, user.PhoneNumber, user.FirstName, user.LastName); err != nil {
		return fmt.Errorf("%w: %v", authErrors.ErrWeakPassword, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("%w: %v", authErrors.ErrDatabaseOperation, err)
	}

	return nil
}

// UpdateUserInfo updates the caller's name fields
func (s *authService) UpdateUserInfo(ctx context.Context, userCtx *types.UserContext, req *models.UpdateUserInfoRequest) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", authErrors.ErrUserNotFound, userCtx.UserID.String())
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.repo.UpdateInfo(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", authErrors.ErrDatabaseOperation, err)
	}

	return user, nil
}

// issueTokenPair creates the access and refresh tokens for a user
func (s *authService) issueTokenPair(user *models.User) (*models.TokenPairResponse, error) {
	claim := map[string]interface{}{
		"uid":         user.ID.String(),
		"phoneNumber": user.PhoneNumber,
		"displayName": user.DisplayName(),
		"role":        user.SystemRole,
	}

	access, err := tokens.CreateToken(s.config.JWT.PrivateKey, user.ID.String(), claim, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := tokens.CreateToken(s.config.JWT.PrivateKey, user.ID.String(), claim, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
