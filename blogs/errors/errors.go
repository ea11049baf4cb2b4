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

// Blog service specific errors
var (
	ErrBlogNotFound      = errors.New("blog not found")
	ErrNotBlogAuthor     = errors.New("caller is not the blog author")
	ErrInvalidBlogData   = errors.New("invalid blog data")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeBlogNotFound     = "BLOG_NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidBlogData  = "INVALID_BLOG_DATA"
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
	case errors.Is(err, ErrBlogNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeBlogNotFound,
			Message: "Blog not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrNotBlogAuthor):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Code:    CodeForbidden,
			Message: "Only the blog author can do this",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidBlogData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidBlogData,
			Message: "Invalid blog data",
			Details: err.Error(),
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
		Details: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
		Details: message,
	})
}

// HandleUserContextError handles user context errors with 401 Unauthorized
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: message,
		Details: message,
	})
}
