package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps arbitrary input to a known role. Anything that is not
// recognized, including the empty string, becomes RoleUser.
func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// User represents an account document in the users collection.
// The password hash is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuthUser is the caller identity resolved from a verified token.
// Role comes from the token claims, so a role change on the account only
// takes effect once outstanding tokens expire.
type AuthUser struct {
	ID    primitive.ObjectID
	Email string
	Role  Role
}

// IsAdmin reports whether the caller holds the admin role.
func (u AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest represents a registration request body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// LoginRequest represents a login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisteredUser is the safe subset of an account returned on registration.
type RegisteredUser struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  Role               `json:"role"`
}

// RegisterResponse is the registration response with a signed token.
type RegisterResponse struct {
	Data  RegisteredUser `json:"data"`
	Token string         `json:"token"`
}

// LoginResponse is the login response with a signed token.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ProfileResponse is the authenticated profile response.
type ProfileResponse struct {
	Data    User   `json:"data"`
	Message string `json:"message"`
}
