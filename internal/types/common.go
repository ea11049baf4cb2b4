package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// Common Values
const (
	UserRole  = "user"
	AdminRole = "admin"
)

// UserCtxName is the fiber.Ctx locals key the auth middleware stores the
// authenticated UserContext under.
const UserCtxName = "user"

// UserContext carries the authenticated caller's identity, extracted from a
// verified JWT. It is the only identity reference the feature slices see.
type UserContext struct {
	UserID      uuid.UUID `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	DisplayName string    `json:"displayName"`
	SystemRole  string    `json:"role"`
}

// IsAdmin reports whether the caller holds the admin system role.
func (u UserContext) IsAdmin() bool {
	return u.SystemRole == AdminRole
}
