package session_test

import (
	"testing"
	"time"

	"github.com/ledgerline/erp-portal/session"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	newSession := func(id string) *session.Session {
		now := time.Now()
		return &session.Session{ID: id, AccessToken: "token", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	}

	t.Run("upsert and get", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("s1", newSession("s1")))

		got, err := repo.Get("s1")
		require.NoError(t, err)
		require.Equal(t, "s1", got.ID)
	})

	t.Run("get of missing session errors", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		_, err := repo.Get("missing")
		require.Error(t, err)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("s1", newSession("s1")))
		require.NoError(t, repo.Delete("s1"))

		_, err := repo.Get("s1")
		require.Error(t, err)
	})

	t.Run("delete of missing session is not an error", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.NoError(t, repo.Delete("missing"))
	})

	t.Run("empty sessionID is rejected", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		require.Error(t, repo.Upsert("", newSession("s1")))
		require.Error(t, repo.Upsert("s1", nil))
		_, err := repo.Get("")
		require.Error(t, err)
		require.Error(t, repo.Delete(""))
	})
}
