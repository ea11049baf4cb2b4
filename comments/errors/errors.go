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

// Comment service specific errors
var (
	// ErrBlogParentNotFound is returned when a comment names a blog parent
	// that does not exist
	ErrBlogParentNotFound = errors.New("no blog found for comment parent")

	// ErrCommentParentNotFound is returned when a comment names a comment
	// parent that does not exist
	ErrCommentParentNotFound = errors.New("no comment found for comment parent")

	ErrCommentNotFound   = errors.New("comment not found")
	ErrBlogNotFound      = errors.New("blog not found")
	ErrInvalidParentKind = errors.New("invalid parent kind")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeBlogNotFound      = "BLOG_NOT_FOUND"
	CodeCommentNotFound   = "COMMENT_NOT_FOUND"
	CodeParentNotFound    = "PARENT_NOT_FOUND"
	CodeInvalidParentKind = "INVALID_PARENT_KIND"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeDatabaseError     = "DATABASE_ERROR"
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
	case errors.Is(err, ErrBlogParentNotFound),
		errors.Is(err, ErrCommentParentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeParentNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ErrBlogNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeBlogNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ErrCommentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeCommentNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ErrInvalidParentKind):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidParentKind,
			Message: err.Error(),
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
