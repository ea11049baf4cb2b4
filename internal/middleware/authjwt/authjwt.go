package authjwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/types"
)

// ClaimKey is the JWT claim carrying the user payload.
const ClaimKey = "claim"

// Config defines the config for the JWT middleware.
type Config struct {
	// The EC public key for validating ES256 tokens.
	PublicKey string
	// The context key to store the UserContext.
	UserCtxName string
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	// Parse the key once on startup.
	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		panic(fmt.Sprintf("failed to parse EC public key: %v", err))
	}

	userCtxName := cfg.UserCtxName
	if userCtxName == "" {
		userCtxName = types.UserCtxName
	}

	return func(c *fiber.Ctx) error {
		var tokenString string

		// 1. Try Authorization header first (for mobile/API clients)
		authHeader := c.Get(types.HeaderAuthorization)
		if authHeader != "" && strings.HasPrefix(authHeader, types.BearerPrefix) {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 {
				tokenString = parts[1]
			}
		}

		// 2. Fall back to access_token cookie (for web browsers)
		if tokenString == "" {
			tokenString = c.Cookies("access_token")
		}

		// 3. If no token found in either place, return error
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid JWT",
			})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// Enforce the expected signing algorithm.
			if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ecPublicKey, nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid token",
				"details": err.Error(),
			})
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				if int64(exp) < time.Now().Unix() {
					return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
						"code":    "UNAUTHORIZED",
						"message": "Token has expired",
					})
				}
			}

			claimData, claimOk := claims[ClaimKey].(map[string]interface{})
			if !claimOk {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "Invalid token claim format",
				})
			}

			userCtx, err := mapToUserContext(claimData)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "Invalid user context in token",
					"details": err.Error(),
				})
			}

			c.Locals(userCtxName, userCtx)
			return c.Next()
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": "Invalid token",
		})
	}
}

// mapToUserContext converts claim data to UserContext
func mapToUserContext(claimData map[string]interface{}) (types.UserContext, error) {
	var userCtx types.UserContext

	if userIDStr, ok := claimData["uid"].(string); ok {
		userID, err := uuid.FromString(userIDStr)
		if err != nil {
			return userCtx, fmt.Errorf("invalid user ID: %v", err)
		}
		userCtx.UserID = userID
	} else {
		return userCtx, errors.New("missing or invalid uid in claim")
	}

	if phoneNumber, ok := claimData["phoneNumber"].(string); ok {
		userCtx.PhoneNumber = phoneNumber
	}

	if displayName, ok := claimData["displayName"].(string); ok {
		userCtx.DisplayName = displayName
	}

	if systemRole, ok := claimData["role"].(string); ok {
		userCtx.SystemRole = systemRole
	}

	if userCtx.SystemRole == "" {
		userCtx.SystemRole = types.UserRole
	}

	return userCtx, nil
}
