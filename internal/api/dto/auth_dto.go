package dto

import (
	"time"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

// LoginRequest payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminUser is the principal shape returned by auth endpoints.
type AdminUser struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      AdminUser `json:"user"`
}

// VerifyResponse is returned by the verify endpoint.
type VerifyResponse struct {
	Valid bool      `json:"valid"`
	User  AdminUser `json:"user"`
}

// AdminUserFromPrincipal maps the domain principal to its API shape.
func AdminUserFromPrincipal(principal domain.AdminPrincipal) AdminUser {
	return AdminUser{Email: principal.Email, Role: string(principal.Role)}
}
