package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the verified identity passed from the routing layer into the
// core. Role flags are read from the store at token issue time, not cached
// per session.
type JWTClaims struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	IsAdmin     bool     `json:"is_admin"`
	IsLibrarian bool     `json:"is_librarian"`
	jwt.RegisteredClaims
}

// LoginRequest carries the login form fields. The identifier matches either
// username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RegisterRequest carries the self-registration form fields.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// UserInfo is the identity payload returned on successful login.
type UserInfo struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
	IsAdmin     bool     `json:"is_admin"`
	IsLibrarian bool     `json:"is_librarian"`
}

// LoginResponse is returned to the session-owning HTTP layer.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}
