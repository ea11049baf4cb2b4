// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"blogapi/auth/errors"
	"blogapi/auth/models"
	"blogapi/auth/services"
	"blogapi/auth/validation"
	"blogapi/internal/types"
)

// AuthHandler handles all account-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler with injected dependencies
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles user registration
// Endpoint: POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateSignupRequest(&req); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(user)
}

// Login handles credential verification and token issuance
// Endpoint: POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateLoginRequest(&req); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	pair, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(pair)
}

// UpdatePassword handles password changes for the authenticated caller
// Endpoint: POST /auth/update-password
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req models.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.authService.UpdatePassword(c.Context(), &user, &req); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

// UpdateUserInfo handles profile updates for the authenticated caller
// Endpoint: PUT /auth/update-user-info
func (h *AuthHandler) UpdateUserInfo(c *fiber.Ctx) error {
	var req models.UpdateUserInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	updated, err := h.authService.UpdateUserInfo(c.Context(), &user, &req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(updated)
}
