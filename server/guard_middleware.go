package server

import (
	"net/http"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/guard"
	"github.com/ledgerline/erp-portal/session"
)

// RouteGuardMiddleware re-evaluates the guard's decision table on every
// request. An authorized request continues with the session and its bearer
// token attached to the context; anything else is a redirect that renders
// nothing.
func (s *Server) RouteGuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, hasSession := s.sessions.FromRequest(r)

		var activeTenant string
		if hasSession {
			activeTenant = sess.Claims.ActiveTenantID
		}

		decision := guard.Evaluate(hasSession, activeTenant, r.URL.Path)
		if !decision.Authorized {
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			return
		}

		if hasSession {
			ctx := session.IntoContext(r.Context(), sess)
			ctx = erpapi.WithToken(ctx, sess.AccessToken)
			r = r.WithContext(ctx)
		}

		next(w, r)
	}
}
