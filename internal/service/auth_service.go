package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	ua "github.com/mileusna/useragent"
	"go.uber.org/zap"

	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/auth"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/config"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/domain"
	"github.com/muynuddinr/dahua-dubai.com-sub001/internal/repository"
	apperrors "github.com/muynuddinr/dahua-dubai.com-sub001/pkg/util"
)

// LoginMeta carries request metadata recorded on the session row.
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

// LoginResult is the issued credential returned to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.AdminPrincipal
}

// AuthService implements the admin login, session verification and logout
// flows. The admin identity is a single configured email/password pair; there
// is no user table. A session row exists per issued token so that revocation
// takes effect immediately regardless of the token's own embedded expiry.
type AuthService struct {
	sessions      repository.SessionRepository
	tokenMgr      *auth.TokenManager
	adminEmail    string
	adminPassword string
	ttl           time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	SessionRepo repository.SessionRepository
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		sessions:      deps.SessionRepo,
		tokenMgr:      auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
		ttl:           cfg.SessionTTL(),
		logger:        deps.Logger,
		now:           time.Now,
	}
}

// Login validates the configured admin credentials, mints a token and replaces
// the active session row. Session persistence is atomic with login: if the row
// cannot be written the caller gets an error and no credential.
func (s *AuthService) Login(ctx context.Context, email, password string, meta LoginMeta) (*LoginResult, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passwordOK {
		// unknown email and wrong password surface identically
		return nil, apperrors.NewUnauthenticated("invalid email or password")
	}

	principal := domain.AdminPrincipal{Email: s.adminEmail, Role: domain.RoleAdmin}
	token, _, err := s.tokenMgr.GenerateToken(principal)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	session := &domain.AdminSession{
		OwnerEmail: s.adminEmail,
		Token:      token,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Device:     deviceSummary(meta.UserAgent),
		IsActive:   true,
		ExpiresAt:  s.now().Add(s.ttl),
	}
	if err := s.sessions.ReplaceActive(ctx, session); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		return nil, apperrors.NewUpstreamError(err)
	}

	s.logger.Info("admin logged in",
		zap.String("ip", meta.IPAddress),
		zap.String("device", session.Device))

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, Principal: principal}, nil
}

// Verify checks a bearer token in order: token signature and embedded expiry,
// then the active session row, then the row's stored absolute expiry. On
// success the stored expiry slides forward by the full TTL. A token is usable
// only while both its signature and its session row remain valid.
func (s *AuthService) Verify(ctx context.Context, token string) (domain.AdminPrincipal, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return domain.AdminPrincipal{}, apperrors.NewUnauthenticated("invalid or expired token")
	}

	session, err := s.sessions.GetActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AdminPrincipal{}, apperrors.NewUnauthenticated("session not found or expired")
		}
		return domain.AdminPrincipal{}, apperrors.NewUpstreamError(err)
	}

	now := s.now()
	if session.Expired(now) {
		if err := s.sessions.Deactivate(ctx, session.ID); err != nil {
			s.logger.Warn("failed to deactivate expired session", zap.Error(err))
		}
		return domain.AdminPrincipal{}, apperrors.NewUnauthenticated("session expired")
	}

	if err := s.sessions.ExtendExpiry(ctx, session.ID, now.Add(s.ttl)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// a concurrent logout between the lookup and the slide loses the race
			return domain.AdminPrincipal{}, apperrors.NewUnauthenticated("session not found or expired")
		}
		return domain.AdminPrincipal{}, apperrors.NewUpstreamError(err)
	}

	return domain.AdminPrincipal{Email: claims.Email, Role: claims.Role}, nil
}

// Logout deactivates the session row for token, if any. It never fails from
// the caller's point of view: logging out with a missing, garbled or already
// revoked token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if _, err := s.tokenMgr.ParseToken(token); err != nil {
		return
	}
	if err := s.sessions.DeactivateByToken(ctx, token); err != nil {
		s.logger.Warn("failed to deactivate session on logout", zap.Error(err))
	}
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func deviceSummary(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return ""
	}
	parsed := ua.Parse(rawUA)
	parts := make([]string, 0, 2)
	if parsed.Name != "" {
		parts = append(parts, strings.TrimSpace(parsed.Name+" "+parsed.Version))
	}
	if parsed.OS != "" {
		parts = append(parts, parsed.OS)
	}
	return strings.Join(parts, " / ")
}
