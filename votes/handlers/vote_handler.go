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

	"blogapi/internal/types"
	"blogapi/votes/errors"
	"blogapi/votes/models"
	"blogapi/votes/services"
)

// VoteHandler handles all vote-related HTTP requests
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVote handles casting or changing a vote
// Endpoint: POST /vote/:blogId
// Body: {"vote_type": "up"}
func (h *VoteHandler) CastVote(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	var req models.CastVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.voteService.CastVote(c.Context(), blogID, &user, req.VoteType)
	if err != nil {
		if goerrors.Is(err, errors.ErrBlogNotFound) {
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeBlogNotFound,
				Message: fmt.Sprintf("No Blog found with id %s.", blogID.String()),
			})
		}
		return errors.HandleServiceError(c, err)
	}

	message := fmt.Sprintf("Vote updated to %s.", req.VoteType)
	if result.Created {
		if req.VoteType == models.VoteTypeUp {
			message = "Up vote successful."
		} else {
			message = "Down vote successful."
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

// RetractVote handles removing the caller's vote
// Endpoint: DELETE /vote/:blogId
func (h *VoteHandler) RetractVote(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.voteService.RetractVote(c.Context(), blogID, &user); err != nil {
		if goerrors.Is(err, errors.ErrVoteNotFound) {
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeVoteNotFound,
				Message: fmt.Sprintf("No vote found with blog id: %s for the user", blogID.String()),
			})
		}
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Your Vote for blog with id: %s has been successfully deleted", blogID.String()),
	})
}
