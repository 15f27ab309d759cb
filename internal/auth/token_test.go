package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	principal := domain.AdminPrincipal{Email: "admin@example.com", Role: domain.RoleAdmin}

	token, expiresAt, err := tm.GenerateToken(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", claims.Email)
	require.Equal(t, domain.RoleAdmin, claims.Role)
	require.Equal(t, "admin@example.com", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken(domain.AdminPrincipal{Email: "admin@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.ParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	claims := &Claims{
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	require.NoError(t, err)

	_, err = tm.ParseToken(signed)
	require.Error(t, err)
}

func TestParseTokenRejectsNoneAlgorithm(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	claims := &Claims{
		Email: "admin@example.com",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(unsigned)
	require.Error(t, err)
}
