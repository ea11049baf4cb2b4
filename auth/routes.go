// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package auth

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/auth/handlers"
	"blogapi/internal/middleware/authjwt"
	platformconfig "blogapi/internal/platform/config"
)

// AuthHandlers holds all the handlers this router needs
type AuthHandlers struct {
	AuthHandler *handlers.AuthHandler
}

// RegisterRoutes is the single entry point for setting up auth routes
func RegisterRoutes(app *fiber.App, h *AuthHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})

	group := app.Group("/auth")

	group.Post("/signup", h.AuthHandler.Signup)
	group.Post("/login", h.AuthHandler.Login)

	group.Post("/update-password", authMiddleware, h.AuthHandler.UpdatePassword)
	group.Put("/update-user-info", authMiddleware, h.AuthHandler.UpdateUserInfo)
}
