// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package votes

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/internal/middleware/authjwt"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/votes/handlers"
)

// VotesHandlers holds all the handlers this router needs
type VotesHandlers struct {
	VoteHandler *handlers.VoteHandler
}

// RegisterRoutes is the single entry point for setting up vote routes
func RegisterRoutes(app *fiber.App, h *VotesHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})

	group := app.Group("/vote", authMiddleware)

	group.Post("/:blogId", h.VoteHandler.CastVote)
	group.Delete("/:blogId", h.VoteHandler.RetractVote)
}
