package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/config"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

type sessionRepoMock struct {
	rows       []*domain.AdminSession
	nextID     int
	replaceErr error
	getErr     error
	extendErr  error
}

func (m *sessionRepoMock) ReplaceActive(_ context.Context, session *domain.AdminSession) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	for _, row := range m.rows {
		if row.OwnerEmail == session.OwnerEmail && row.IsActive {
			row.IsActive = false
		}
	}
	m.nextID++
	session.ID = fmt.Sprintf("session-%d", m.nextID)
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	stored := *session
	m.rows = append(m.rows, &stored)
	return nil
}

func (m *sessionRepoMock) GetActiveByToken(_ context.Context, token string) (*domain.AdminSession, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, row := range m.rows {
		if row.Token == token && row.IsActive {
			found := *row
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *sessionRepoMock) Deactivate(_ context.Context, id string) error {
	for _, row := range m.rows {
		if row.ID == id {
			row.IsActive = false
		}
	}
	return nil
}

func (m *sessionRepoMock) DeactivateByToken(_ context.Context, token string) error {
	for _, row := range m.rows {
		if row.Token == token {
			row.IsActive = false
		}
	}
	return nil
}

func (m *sessionRepoMock) ExtendExpiry(_ context.Context, id string, expiresAt time.Time) error {
	if m.extendErr != nil {
		return m.extendErr
	}
	for _, row := range m.rows {
		if row.ID == id && row.IsActive {
			row.ExpiresAt = expiresAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *sessionRepoMock) active() []*domain.AdminSession {
	var out []*domain.AdminSession
	for _, row := range m.rows {
		if row.IsActive {
			out = append(out, row)
		}
	}
	return out
}

func newAuthFixture(t *testing.T) (*AuthService, *sessionRepoMock) {
	t.Helper()
	repo := &sessionRepoMock{}
	svc := NewAuthService(config.AuthConfig{
		AdminEmail:      "admin@example.com",
		AdminPassword:   "s3cret",
		JWTSecret:       "test-secret",
		SessionTTLHours: 24,
	}, AuthDependencies{SessionRepo: repo, Logger: zap.NewNop()})
	return svc, repo
}

func requireUnauthenticated(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UNAUTHENTICATED", domainErr.Code)
	require.Equal(t, message, domainErr.Message)
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "admin@example.com", result.Principal.Email)
	require.Equal(t, domain.RoleAdmin, result.Principal.Role)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, 5*time.Second)

	active := repo.active()
	require.Len(t, active, 1)
	require.Equal(t, result.Token, active[0].Token)
	require.Equal(t, "203.0.113.7", active[0].IPAddress)
	require.Contains(t, active[0].Device, "Chrome")
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "wrong"},
		{"unknown email", "other@example.com", "s3cret"},
		{"both wrong", "other@example.com", "wrong"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tc.email, tc.password, LoginMeta{})
			require.Nil(t, result)
			requireUnauthenticated(t, err, "invalid email or password")
		})
	}
	require.Empty(t, repo.rows)
}

func TestLoginSessionPersistFailure(t *testing.T) {
	svc, repo := newAuthFixture(t)
	repo.replaceErr = errors.New("connection reset")

	result, err := svc.Login(context.Background(), "admin@example.com", "s3cret", LoginMeta{})
	require.Nil(t, result)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}

func TestVerifySlidesExpiry(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	later := time.Now().Add(6 * time.Hour)
	svc.now = func() time.Time { return later }

	principal, err := svc.Verify(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", principal.Email)
	require.Equal(t, domain.RoleAdmin, principal.Role)

	active := repo.active()
	require.Len(t, active, 1)
	require.Equal(t, later.Add(24*time.Hour), active[0].ExpiresAt)
}

func TestVerifyUnknownToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Verify(context.Background(), "garbled")
	requireUnauthenticated(t, err, "invalid or expired token")
}

func TestVerifyRevokedSession(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)
	require.NoError(t, repo.DeactivateByToken(ctx, result.Token))

	_, err = svc.Verify(ctx, result.Token)
	requireUnauthenticated(t, err, "session not found or expired")
}

func TestVerifyExpiredSessionDeactivatesRow(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = svc.Verify(ctx, result.Token)
	requireUnauthenticated(t, err, "session expired")
	require.Empty(t, repo.active())
}

func TestVerifyLookupFailureIsUpstreamNotAuth(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	repo.getErr = errors.New("connection refused")

	_, err = svc.Verify(ctx, result.Token)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)

	// the session row is untouched; once the store recovers the token works
	repo.getErr = nil
	principal, err := svc.Verify(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", principal.Email)
}

func TestVerifySlideFailureIsUpstreamNotAuth(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	repo.extendErr = errors.New("connection refused")

	_, err = svc.Verify(ctx, result.Token)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	require.Len(t, repo.active(), 1)
}

func TestVerifySlideLosesRaceToLogout(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	// the row vanishes between the lookup and the slide
	repo.extendErr = pgx.ErrNoRows

	_, err = svc.Verify(ctx, result.Token)
	requireUnauthenticated(t, err, "session not found or expired")
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{})
	require.NoError(t, err)

	svc.Logout(ctx, result.Token)
	require.Empty(t, repo.active())

	_, err = svc.Verify(ctx, result.Token)
	requireUnauthenticated(t, err, "session not found or expired")

	// repeated and garbled logouts are no-ops
	svc.Logout(ctx, result.Token)
	svc.Logout(ctx, "garbled")
	svc.Logout(ctx, "")
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{IPAddress: "198.51.100.1"})
	require.NoError(t, err)

	second, err := svc.Login(ctx, "admin@example.com", "s3cret", LoginMeta{IPAddress: "198.51.100.2"})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	active := repo.active()
	require.Len(t, active, 1)
	require.Equal(t, second.Token, active[0].Token)

	_, err = svc.Verify(ctx, first.Token)
	requireUnauthenticated(t, err, "session not found or expired")

	principal, err := svc.Verify(ctx, second.Token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", principal.Email)
}
