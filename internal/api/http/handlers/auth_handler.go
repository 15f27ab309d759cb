package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/api/dto"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/auth"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/service"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// AuthHandler exposes the admin login, verify and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password, service.LoginMeta{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}

	return ok(c, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.AdminUserFromPrincipal(result.Principal),
	})
}

// Verify handles GET /api/auth/verify. The route runs behind the session
// middleware, so reaching the handler means the token passed every check.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, found := auth.PrincipalFromContext(c)
	if !found {
		return apperrors.NewUnauthenticated("no token provided")
	}
	return ok(c, dto.VerifyResponse{
		Valid: true,
		User:  dto.AdminUserFromPrincipal(principal),
	})
}

// Logout handles POST /api/auth/logout. Always succeeds: logging out without
// a token, or with an expired or already revoked one, is a no-op.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token, found := auth.BearerToken(c); found {
		h.auth.Logout(c.Context(), token)
	}
	return okMessage(c, "logged out")
}
