// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Auth service specific errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrInvalidCredentials     = errors.New("invalid phone number or password")
	ErrWeakPassword           = errors.New("password does not meet requirements")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrWrongPassword          = errors.New("current password is incorrect")
	ErrDatabaseOperation      = errors.New("database operation failed")
)

// Error codes
const (
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodePhoneTaken       = "PHONE_ALREADY_REGISTERED"
	CodeInvalidCreds     = "INVALID_CREDENTIALS"
	CodeWeakPassword     = "WEAK_PASSWORD"
	CodePasswordMismatch = "PASSWORD_MISMATCH"
	CodeWrongPassword    = "WRONG_PASSWORD"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDatabaseError    = "DATABASE_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeUserNotFound,
			Message: "User not found",
		})
	case errors.Is(err, ErrPhoneAlreadyRegistered):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodePhoneTaken,
			Message: "A user with this phone number already exists",
		})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Code:    CodeInvalidCreds,
			Message: "Invalid phone number or password",
		})
	case errors.Is(err, ErrWrongPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeWrongPassword,
			Message: "Current password is incorrect",
		})
	case errors.Is(err, ErrWeakPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeWeakPassword,
			Message: err.Error(),
		})
	case errors.Is(err, ErrPasswordMismatch):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodePasswordMismatch,
			Message: "New password and confirmation do not match",
		})
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
	})
}

// HandleUserContextError handles user context errors with 401 Unauthorized
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: message,
	})
}
