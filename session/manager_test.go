package session_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ledgerline/erp-portal/session"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	session.Repo
	deletes atomic.Int64
}

func (r *countingRepo) Delete(sessionID string) error {
	r.deletes.Add(1)
	return r.Repo.Delete(sessionID)
}

func requestWithCookie(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

func TestManager(t *testing.T) {
	const cookieName = "portal_session"

	newManager := func() (*session.Manager, *countingRepo) {
		repo := &countingRepo{Repo: session.NewInMemoryRepo()}
		return session.NewManager(repo, cookieName, time.Hour), repo
	}

	t.Run("establish stores the session and sets the cookie", func(t *testing.T) {
		mgr, _ := newManager()
		token := signedToken(t, jwt.MapClaims{"sub": "user-1", "active_tenant_id": "tenant-1"})

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, token, "refresh-1")
		require.NoError(t, err)
		require.NotEmpty(t, sess.ID)
		require.Equal(t, "tenant-1", sess.Claims.ActiveTenantID)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, cookieName, cookies[0].Name)
		require.Equal(t, sess.ID, cookies[0].Value)
		require.True(t, cookies[0].HttpOnly)

		got, ok := mgr.FromRequest(requestWithCookie(cookieName, sess.ID))
		require.True(t, ok)
		require.Equal(t, sess.ID, got.ID)
	})

	t.Run("establish tolerates an opaque access token", func(t *testing.T) {
		mgr, _ := newManager()

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)
		require.Empty(t, sess.Claims.ActiveTenantID)
		require.Equal(t, "opaque-token", sess.AccessToken)
	})

	t.Run("request without cookie has no session", func(t *testing.T) {
		mgr, _ := newManager()
		_, ok := mgr.FromRequest(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		require.False(t, ok)
	})

	t.Run("expired session is deleted and treated as absent", func(t *testing.T) {
		repo := &countingRepo{Repo: session.NewInMemoryRepo()}
		mgr := session.NewManager(repo, cookieName, -time.Minute)

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)

		_, ok := mgr.FromRequest(requestWithCookie(cookieName, sess.ID))
		require.False(t, ok)
		require.Equal(t, int64(1), repo.deletes.Load())
	})

	t.Run("invalidate tears down exactly once under concurrency", func(t *testing.T) {
		mgr, repo := newManager()

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				mgr.Invalidate(sess)
			}()
		}
		wg.Wait()

		require.Equal(t, int64(1), repo.deletes.Load())
		_, ok := mgr.FromRequest(requestWithCookie(cookieName, sess.ID))
		require.False(t, ok)
	})

	t.Run("discard callback fires when a session expires", func(t *testing.T) {
		repo := &countingRepo{Repo: session.NewInMemoryRepo()}
		mgr := session.NewManager(repo, cookieName, -time.Minute)
		var discarded []string
		mgr.OnDiscard(func(sessionID string) { discarded = append(discarded, sessionID) })

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)

		_, ok := mgr.FromRequest(requestWithCookie(cookieName, sess.ID))
		require.False(t, ok)
		require.Equal(t, []string{sess.ID}, discarded)
	})

	t.Run("discard callback fires once on invalidate", func(t *testing.T) {
		mgr, _ := newManager()
		var discarded []string
		mgr.OnDiscard(func(sessionID string) { discarded = append(discarded, sessionID) })

		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)

		mgr.Invalidate(sess)
		mgr.Invalidate(sess)
		require.Equal(t, []string{sess.ID}, discarded)
	})

	t.Run("invalidate of nil session is a no-op", func(t *testing.T) {
		mgr, repo := newManager()
		mgr.Invalidate(nil)
		require.Equal(t, int64(0), repo.deletes.Load())
	})

	t.Run("clear cookie expires it", func(t *testing.T) {
		mgr, _ := newManager()
		w := httptest.NewRecorder()
		mgr.ClearCookie(w)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, cookieName, cookies[0].Name)
		require.Negative(t, cookies[0].MaxAge)
	})

	t.Run("context round trip", func(t *testing.T) {
		mgr, _ := newManager()
		w := httptest.NewRecorder()
		sess, err := mgr.Establish(w, "opaque-token", "")
		require.NoError(t, err)

		ctx := session.IntoContext(t.Context(), sess)
		got, ok := session.FromContext(ctx)
		require.True(t, ok)
		require.Equal(t, sess.ID, got.ID)

		_, ok = session.FromContext(t.Context())
		require.False(t, ok)
	})
}
