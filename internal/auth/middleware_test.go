package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

type verifierStub struct {
	principal domain.AdminPrincipal
	err       error
	gotToken  string
}

func (v *verifierStub) Verify(_ context.Context, token string) (domain.AdminPrincipal, error) {
	v.gotToken = token
	if v.err != nil {
		return domain.AdminPrincipal{}, v.err
	}
	return v.principal, nil
}

func newProtectedApp(verifier *verifierStub) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"success": false, "message": domainErr.Message})
		},
	})
	mw := NewMiddleware(verifier)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"email": principal.Email})
	})
	return app
}

func TestMiddlewareValidToken(t *testing.T) {
	verifier := &verifierStub{principal: domain.AdminPrincipal{Email: "admin@example.com", Role: domain.RoleAdmin}}
	app := newProtectedApp(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "some-token", verifier.gotToken)
}

func TestMiddlewareMissingToken(t *testing.T) {
	app := newProtectedApp(&verifierStub{})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestMiddlewareRejectedToken(t *testing.T) {
	verifier := &verifierStub{err: apperrors.NewUnauthenticated("session not found or expired")}
	app := newProtectedApp(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBearerTokenCaseInsensitiveScheme(t *testing.T) {
	verifier := &verifierStub{principal: domain.AdminPrincipal{Email: "admin@example.com", Role: domain.RoleAdmin}}
	app := newProtectedApp(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer some-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
