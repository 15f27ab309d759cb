package domain

import "time"

// AdminRole is the role carried in issued tokens. The service has a single
// configured admin identity, so only one role exists.
type AdminRole string

const RoleAdmin AdminRole = "admin"

// AdminPrincipal is the authenticated caller, derived from token claims at
// verification time. It is never persisted on its own.
type AdminPrincipal struct {
	Email string
	Role  AdminRole
}

// AdminSession is one issued token's revocable validity state, independent of
// the token's own embedded expiry. At most one row per owner may be active:
// a new login supersedes prior rows instead of deleting them.
type AdminSession struct {
	ID         string
	OwnerEmail string
	Token      string
	IPAddress  string
	UserAgent  string
	Device     string
	IsActive   bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the row's stored absolute expiry has passed.
func (s *AdminSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
