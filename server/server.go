package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/internal/config"
	"github.com/ledgerline/erp-portal/permissions"
	"github.com/ledgerline/erp-portal/session"
)

// Server wires the portal together: the session manager, the ERP API client,
// per-session permission registries, and the HTML route handlers.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *session.Manager
	api      *erpapi.Client

	registriesLock sync.Mutex
	registries     map[string]*permissions.Registry
}

// New constructs the portal server.
func New(cfg config.Config, sessions *session.Manager, api *erpapi.Client) *Server {
	s := &Server{
		env:        cfg.Env,
		mux:        http.NewServeMux(),
		config:     cfg,
		sessions:   sessions,
		api:        api,
		registries: make(map[string]*permissions.Registry),
	}

	// Whichever way a session ends (logout, 401 teardown, TTL expiry), its
	// permission registry goes with it.
	sessions.OnDiscard(s.dropRegistry)

	// A 401 from the backend tears the session down exactly once, no matter
	// how many in-flight requests hit it at the same time. The redirect to
	// login happens on the next guard evaluation.
	api.OnUnauthorized(func(ctx context.Context) {
		if sess, ok := session.FromContext(ctx); ok {
			sessions.Invalidate(sess)
		}
	})

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// RegisterRouteHandler registers a handler and records the pattern for the
// dev-mode route log.
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// RegisterRouteFunc registers a handler func and records the pattern.
func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// registryFor returns the permission registry tied to the session, creating
// it on first use so the fetch happens once per session.
func (s *Server) registryFor(sess *session.Session) *permissions.Registry {
	s.registriesLock.Lock()
	defer s.registriesLock.Unlock()

	reg, ok := s.registries[sess.ID]
	if !ok {
		reg = permissions.NewRegistry(s.api)
		s.registries[sess.ID] = reg
	}
	return reg
}

func (s *Server) dropRegistry(sessionID string) {
	s.registriesLock.Lock()
	defer s.registriesLock.Unlock()
	delete(s.registries, sessionID)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
