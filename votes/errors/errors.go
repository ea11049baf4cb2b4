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

// Vote service specific errors
var (
	// ErrBlogNotFound is returned when the vote targets a blog that does
	// not exist
	ErrBlogNotFound = errors.New("blog not found")

	// ErrAlreadyVoted is returned when the caller casts the same direction
	// they already hold. The ledger is left untouched.
	ErrAlreadyVoted = errors.New("already voted on this blog")

	// ErrVoteNotFound is returned when retracting a vote that does not
	// exist. Distinct from ErrBlogNotFound so the two 404 shapes stay apart.
	ErrVoteNotFound = errors.New("vote not found")

	ErrInvalidVoteType   = errors.New("invalid vote type")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeBlogNotFound    = "BLOG_NOT_FOUND"
	CodeAlreadyVoted    = "ALREADY_VOTED"
	CodeVoteNotFound    = "VOTE_NOT_FOUND"
	CodeInvalidVoteType = "INVALID_VOTE_TYPE"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeDatabaseError   = "DATABASE_ERROR"
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
			Message: err.Error(),
		})
	case errors.Is(err, ErrAlreadyVoted):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeAlreadyVoted,
			Message: "You've already voted on this blog.",
		})
	case errors.Is(err, ErrVoteNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeVoteNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, ErrInvalidVoteType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidVoteType,
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
