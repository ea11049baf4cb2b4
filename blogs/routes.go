// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package blogs

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/blogs/handlers"
	"blogapi/internal/middleware/authjwt"
	platformconfig "blogapi/internal/platform/config"
)

// BlogsHandlers holds all the handlers this router needs
type BlogsHandlers struct {
	BlogHandler *handlers.BlogHandler
}

// RegisterRoutes is the single entry point for setting up blog routes
func RegisterRoutes(app *fiber.App, h *BlogsHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})

	// Ranking and detail views are public
	app.Get("/most-popular-blogs", h.BlogHandler.MostPopularBlogs)
	app.Get("/blog-detail/:blogId", h.BlogHandler.GetBlogDetail)

	group := app.Group("/blogs")

	group.Get("/", h.BlogHandler.ListBlogs)
	group.Get("/:blogId", h.BlogHandler.GetBlog)

	group.Post("/", authMiddleware, h.BlogHandler.CreateBlog)
	group.Put("/:blogId", authMiddleware, h.BlogHandler.UpdateBlog)
	group.Delete("/:blogId", authMiddleware, h.BlogHandler.DeleteBlog)
}
