package session

import (
	"sync"
	"time"
)

// Claims are the decoded token claims the portal uses for routing decisions.
// They are read from the access token without signature verification and must
// never be treated as an authorization boundary; the backend re-checks every
// call against the bearer token itself.
type Claims struct {
	UserID         string
	ActiveTenantID string
	ExpiresAt      time.Time
}

// Session is the portal's view of a logged-in user: the token pair issued by
// the ERP backend plus the claims decoded from the access token.
//
// A session is created on successful login, replaced when the backend rotates
// tokens, and destroyed on logout or on the first 401 seen for it.
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	Claims       Claims
	CreatedAt    time.Time
	ExpiresAt    time.Time

	logoutOnce sync.Once
}

// Expired reports whether the session itself (not the access token) is past
// its lifetime.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// runLogout executes fn at most once for the lifetime of the session,
// regardless of how many concurrent callers observe a 401.
func (s *Session) runLogout(fn func()) {
	s.logoutOnce.Do(fn)
}
