// Package permissions caches the permission-token set for one session and
// answers synchronous membership checks against it. All checks fail closed:
// before the fetch resolves, and after a failed fetch, every check is false.
package permissions

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the permission set for the current session.
// *erpapi.Client satisfies it.
type Fetcher interface {
	Permissions(ctx context.Context) ([]string, error)
}

// Registry is the per-session permission cache. One fetch per session;
// callers needing freshness (e.g. after a role change) call Refresh.
type Registry struct {
	fetcher  Fetcher
	loadOnce sync.Once

	mu      sync.RWMutex
	set     map[string]struct{}
	loaded  bool
	lastErr error
}

// NewRegistry creates an empty registry. Until Load runs, every check
// reports false.
func NewRegistry(fetcher Fetcher) *Registry {
	return &Registry{fetcher: fetcher}
}

// Load fetches the permission set once, even when pages for the same session
// race on it; later calls are no-ops. Use Refresh to force a re-fetch. A fetch
// failure leaves the set empty and is logged, not surfaced: gated UI simply
// stays hidden.
func (r *Registry) Load(ctx context.Context) {
	r.loadOnce.Do(func() {
		r.Refresh(ctx)
	})
}

// Refresh re-fetches the permission set unconditionally.
func (r *Registry) Refresh(ctx context.Context) {
	perms, err := r.fetcher.Permissions(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaded = true
	r.lastErr = err
	r.set = make(map[string]struct{}, len(perms))
	if err != nil {
		log.Warn().Err(err).Msg("permission fetch failed, treating set as empty")
		return
	}
	for _, p := range perms {
		r.set[p] = struct{}{}
	}
}

// Has reports whether the session holds the permission token. False while
// the initial fetch is outstanding and after a failed fetch.
func (r *Registry) Has(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return false
	}
	_, ok := r.set[token]
	return ok
}

// LastError returns the error from the most recent fetch, if any. Callers
// may use it to offer an explicit refresh action; it is never rendered as a
// blocking failure.
func (r *Registry) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}
