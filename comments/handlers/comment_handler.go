// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"blogapi/comments/errors"
	"blogapi/comments/models"
	"blogapi/comments/services"
	"blogapi/comments/validation"
	"blogapi/internal/types"
)

// CommentHandler handles all comment-related HTTP requests
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment handles comment creation
// Endpoint: POST /comments
// Body: {"description": "...", "related_id": "uuid", "source_type": "blog"}
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	kind, parentID, err := validation.ValidateCreateCommentRequest(&req)
	if err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	comment, err := h.commentService.CreateComment(c.Context(), kind, parentID, req.Description, &user)
	if err != nil {
		switch {
		case goerrors.Is(err, errors.ErrBlogParentNotFound):
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeParentNotFound,
				Message: fmt.Sprintf("No Blog found with id %s.", parentID.String()),
			})
		case goerrors.Is(err, errors.ErrCommentParentNotFound):
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeParentNotFound,
				Message: fmt.Sprintf("No Comment found with id %s.", parentID.String()),
			})
		}
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// GetThread handles retrieving the full nested thread below a comment
// Endpoint: GET /comments/:commentId/thread
func (h *CommentHandler) GetThread(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "commentId must be a valid UUID")
	}

	thread, err := h.commentService.GetThread(c.Context(), commentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(thread)
}

// DeleteComment handles comment deletion (admin only, enforced by the
// route's middleware)
// Endpoint: DELETE /comments/:commentId
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "commentId must be a valid UUID")
	}

	if err := h.commentService.DeleteComment(c.Context(), commentID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Comment with id %s has been deleted", commentID.String()),
	})
}

// ListBlogComments handles the full top-level comment listing of a blog
// Endpoint: GET /:blogId/comments
func (h *CommentHandler) ListBlogComments(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	comments, err := h.commentService.ListBlogComments(c.Context(), blogID)
	if err != nil {
		if goerrors.Is(err, errors.ErrBlogNotFound) {
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeBlogNotFound,
				Message: fmt.Sprintf("No Blog found with id %s.", blogID.String()),
			})
		}
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"items": comments,
		"total": len(comments),
	})
}
