// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package comments

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/comments/handlers"
	"blogapi/internal/middleware/admin"
	"blogapi/internal/middleware/authjwt"
	platformconfig "blogapi/internal/platform/config"
)

// CommentsHandlers holds all the handlers this router needs
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comment routes
func RegisterRoutes(app *fiber.App, h *CommentsHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})
	adminMiddleware := admin.New(admin.Config{})

	group := app.Group("/comments")

	// Reads are public
	group.Get("/:commentId/thread", h.CommentHandler.GetThread)

	// Writes require a caller; deletion additionally requires the admin role
	group.Post("/", authMiddleware, h.CommentHandler.CreateComment)
	group.Delete("/:commentId", authMiddleware, adminMiddleware, h.CommentHandler.DeleteComment)

	// Top-level comment listing of one blog
	app.Get("/:blogId/comments", h.CommentHandler.ListBlogComments)
}
