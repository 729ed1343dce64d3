package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

// Manager owns the session lifecycle: creation on login, lookup per request,
// and teardown on logout or 401. It is the single source of truth for
// "is a user logged in".
type Manager struct {
	repo       Repo
	cookieName string
	ttl        time.Duration
	onDiscard  func(sessionID string)
}

// NewManager constructs a Manager around a session repository.
func NewManager(repo Repo, cookieName string, ttl time.Duration) *Manager {
	return &Manager{repo: repo, cookieName: cookieName, ttl: ttl}
}

// OnDiscard registers fn to run whenever a session is removed, on logout, 401
// teardown or TTL expiry. Callers holding per-session state keyed by session
// ID (the server's permission registries) release it here.
func (m *Manager) OnDiscard(fn func(sessionID string)) {
	m.onDiscard = fn
}

func (m *Manager) discard(sessionID string) {
	if m.onDiscard != nil {
		m.onDiscard(sessionID)
	}
}

// Establish creates a session for a freshly issued token pair, stores it and
// sets the session cookie on the response.
func (m *Manager) Establish(w http.ResponseWriter, accessToken, refreshToken string) (*Session, error) {
	claims, err := DecodeClaims(accessToken)
	if err != nil {
		// An opaque (non-JWT) access token still yields a usable session,
		// just without routing hints.
		log.Warn().Err(err).Msg("access token carries no decodable claims")
		claims = Claims{}
	}

	now := time.Now()
	sess := &Session{
		ID:           uuid.New().String(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Claims:       claims,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}

	if err := m.repo.Upsert(sess.ID, sess); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})
	return sess, nil
}

// FromRequest resolves the session referenced by the request's cookie.
// Expired sessions are deleted and treated as absent.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	sess, err := m.repo.Get(cookie.Value)
	if err != nil || sess == nil {
		return nil, false
	}

	if sess.Expired(time.Now()) {
		_ = m.repo.Delete(sess.ID)
		m.discard(sess.ID)
		return nil, false
	}
	return sess, true
}

// Invalidate tears the session down. It is safe to call from any number of
// concurrent 401 handlers; the underlying teardown runs exactly once.
func (m *Manager) Invalidate(sess *Session) {
	if sess == nil {
		return
	}
	sess.runLogout(func() {
		if err := m.repo.Delete(sess.ID); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to delete session")
		}
		m.discard(sess.ID)
	})
}

// ClearCookie expires the session cookie on the response.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// IntoContext attaches the session to a context.
func IntoContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext retrieves the session attached by IntoContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Session)
	return sess, ok && sess != nil
}
