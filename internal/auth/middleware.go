package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

const principalKey = "auth_principal"

// SessionVerifier checks a bearer token against both its signature and its
// session row, sliding the row's expiry forward on success.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (domain.AdminPrincipal, error)
}

// Middleware enforces the admin session check on protected routes.
type Middleware struct {
	verifier SessionVerifier
}

// NewMiddleware constructs middleware.
func NewMiddleware(verifier SessionVerifier) *Middleware {
	return &Middleware{verifier: verifier}
}

// Handle authenticates the request and stores the principal in locals.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := BearerToken(c)
	if !ok {
		return apperrors.NewUnauthenticated("no token provided")
	}

	principal, err := m.verifier.Verify(c.Context(), token)
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFromContext retrieves the authenticated admin principal.
func PrincipalFromContext(c *fiber.Ctx) (domain.AdminPrincipal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return domain.AdminPrincipal{}, false
	}
	principal, ok := val.(domain.AdminPrincipal)
	return principal, ok
}
