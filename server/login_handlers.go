package server

import (
	"net/http"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/guard"
)

// LoginPageData contains data for rendering the login page
type loginPageData struct {
	pageBase
	Email string
}

// IndexHandler sends the root path to the dashboard; the route guard has
// already bounced anyone who should not be here.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
	}
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl := mustParsePage("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := loginPageData{
			pageBase: s.pageFor(r, "Sign in"),
			Email:    r.URL.Query().Get("email"),
		}
		data.Error = r.URL.Query().Get("error")
		renderPage(w, tmpl, "login.html", data)
	}
}

// LoginSubmitHandler processes the login form submission
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	tmpl := mustParsePage("login.html")

	renderError := func(w http.ResponseWriter, r *http.Request, email, msg string) {
		data := loginPageData{
			pageBase: s.pageFor(r, "Sign in"),
			Email:    email,
		}
		data.Error = msg
		renderPage(w, tmpl, "login.html", data)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			renderError(w, r, email, "Email and password are required")
			return
		}

		result, err := s.api.Login(r.Context(), email, password)
		if err != nil {
			renderError(w, r, email, errorBanner(err))
			return
		}

		sess, err := s.sessions.Establish(w, result.AccessToken, result.RefreshToken)
		if err != nil {
			renderError(w, r, email, "Could not start a session. Please try again.")
			return
		}

		// Warm the permission registry so gated navigation is settled before
		// the first page renders. A failure leaves the set empty; gated
		// entries simply stay hidden.
		ctx := erpapi.WithToken(r.Context(), sess.AccessToken)
		s.registryFor(sess).Load(ctx)

		// The backend may steer the client (e.g. into a verification flow);
		// otherwise the guard's own table picks the landing page.
		if result.RedirectURL != "" {
			http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
			return
		}
		decision := guard.Evaluate(true, sess.Claims.ActiveTenantID, RouteLogin)
		http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
	}
}

// RegisterPageHandler displays the registration entry page. Account creation
// itself is handled by the backend's own flows; this page only points there.
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl := mustParsePage("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, tmpl, "register.html", s.pageFor(r, "Create account"))
	}
}

// LogoutHandler ends the user session and clears the cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := s.sessions.FromRequest(r); ok {
			s.sessions.Invalidate(sess)
		}
		s.sessions.ClearCookie(w)
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
