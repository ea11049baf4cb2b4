// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authErrors "blogapi/auth/errors"
	"blogapi/auth/models"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/internal/types"
)

func genTestKeyPEM(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))
}

func testConfig(t *testing.T) *platformconfig.Config {
	return &platformconfig.Config{
		JWT: platformconfig.JWTConfig{
			PrivateKey:      genTestKeyPEM(t),
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestSignup(t *testing.T) {
	t.Run("creates an active user with a hashed password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.PhoneNumber == "5551234567" &&
				u.SystemRole == types.UserRole &&
				u.PasswordHash != "correct horse battery"
		})).Return(nil)

		user, err := svc.Signup(context.Background(), &models.SignupRequest{
			PhoneNumber: "5551234567",
			Password:    "correct horse battery",
			FirstName:   "Ada",
			LastName:    "Lovelace",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.DisplayName())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate phone number", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		repo.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("failed to create user: %w", &pq.Error{Code: "23505"}))

		_, err := svc.Signup(context.Background(), &models.SignupRequest{
			PhoneNumber: "5551234567",
			Password:    "correct horse battery",
			FirstName:   "Ada",
			LastName:    "Lovelace",
		})

		assert.ErrorIs(t, err, authErrors.ErrPhoneAlreadyRegistered)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByPhoneNumber", mock.Anything, "5551234567").Return(&models.User{
			ID:           userID,
			PhoneNumber:  "5551234567",
			PasswordHash: hashOf(t, "correct horse battery"),
			FirstName:    "Ada",
			LastName:     "Lovelace",
			SystemRole:   types.UserRole,
		}, nil)
		repo.On("TouchLastLogin", mock.Anything, userID).Return(nil)

		pair, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "5551234567",
			Password:    "correct horse battery",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByPhoneNumber", mock.Anything, "5551234567").Return(&models.User{
			ID:           userID,
			PasswordHash: hashOf(t, "correct horse battery"),
		}, nil)

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "5551234567",
			Password:    "wrong",
		})

		assert.ErrorIs(t, err, authErrors.ErrInvalidCredentials)
	})

	t.Run("an unknown account looks like a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		repo.On("FindByPhoneNumber", mock.Anything, "5550000000").Return(nil, assert.AnError)

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			PhoneNumber: "5550000000",
			Password:    "whatever",
		})

		assert.ErrorIs(t, err, authErrors.ErrInvalidCredentials)
	})
}

func TestUpdatePassword(t *testing.T) {
	newUserCtx := func(id uuid.UUID) *types.UserContext {
		return &types.UserContext{UserID: id, SystemRole: types.UserRole}
	}

	t.Run("replaces the hash after verifying the current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, userID).Return(&models.User{
			ID:           userID,
			PhoneNumber:  "5551234567",
			PasswordHash: hashOf(t, "old password 9"),
		}, nil)
		repo.On("UpdatePassword", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("brand new passphrase")) == nil
		})).Return(nil)

		err := svc.UpdatePassword(context.Background(), newUserCtx(userID), &models.UpdatePasswordRequest{
			OldPassword:     "old password 9",
			NewPassword:     "brand new passphrase",
			ConfirmPassword: "brand new passphrase",
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, userID).Return(&models.User{
			ID:           userID,
			PasswordHash: hashOf(t, "old password 9"),
		}, nil)

		err := svc.UpdatePassword(context.Background(), newUserCtx(userID), &models.UpdatePasswordRequest{
			OldPassword:     "not it",
			NewPassword:     "brand new passphrase",
			ConfirmPassword: "brand new passphrase",
		})

		assert.ErrorIs(t, err, authErrors.ErrWrongPassword)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, userID).Return(&models.User{
			ID:           userID,
			PasswordHash: hashOf(t, "old password 9"),
		}, nil)

		err := svc.UpdatePassword(context.Background(), newUserCtx(userID), &models.UpdatePasswordRequest{
			OldPassword:     "old password 9",
			NewPassword:     "brand new passphrase",
			ConfirmPassword: "something else",
		})

		assert.ErrorIs(t, err, authErrors.ErrPasswordMismatch)
	})

	t.Run("rejects an entirely numeric password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, userID).Return(&models.User{
			ID:           userID,
			PasswordHash: hashOf(t, "old password 9"),
		}, nil)

		err := svc.UpdatePassword(context.Background(), newUserCtx(userID), &models.UpdatePasswordRequest{
			OldPassword:     "old password 9",
			NewPassword:     "123456789012",
			ConfirmPassword: "123456789012",
		})

		assert.ErrorIs(t, err, authErrors.ErrWeakPassword)
	})
}

func TestUpdateUserInfo(t *testing.T) {
	t.Run("updates names and leaves the phone number alone", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testConfig(t))

		userID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, userID).Return(&models.User{
			ID:          userID,
			PhoneNumber: "5551234567",
			FirstName:   "Ada",
			LastName:    "Lovelace",
		}, nil)
		repo.On("UpdateInfo", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.FirstName == "Grace" && u.LastName == "Lovelace" && u.PhoneNumber == "5551234567"
		})).Return(nil)

		first := "Grace"
		user, err := svc.UpdateUserInfo(context.Background(), &types.UserContext{UserID: userID}, &models.UpdateUserInfoRequest{
			FirstName: &first,
		})

		require.NoError(t, err)
		assert.Equal(t, "Grace Lovelace", user.DisplayName())
		repo.AssertExpectations(t)
	})
}
