package server

import (
	"html/template"
	"net/http"

	"github.com/ledgerline/erp-portal/gate"
	"github.com/ledgerline/erp-portal/view"
)

type rolesPageData struct {
	pageBase
	Allowed     bool
	UserName    string
	Role        string
	Department  string
	Permissions template.HTML
	FetchFailed bool
}

// RolesHandler shows the current user's role, department and effective
// permission tokens. Visible to admins only; everyone else gets the
// restricted placeholder.
func (s *Server) RolesHandler() http.HandlerFunc {
	tmpl := mustParsePage("roles.html")

	return func(w http.ResponseWriter, r *http.Request) {
		_, reg, ok := s.sessionRegistry(r)
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := rolesPageData{pageBase: s.pageFor(r, "Roles & Permissions")}

		user, err := s.api.Me(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			data.Error = errorBanner(err)
			renderPage(w, tmpl, "roles.html", data)
			return
		}

		subject := &gate.Subject{Role: user.Role, Department: user.Department}
		data.Allowed = reg.Has(PermRolesManage) ||
			gate.Allowed(subject, gate.Requirement{Roles: []string{"admin"}})
		if !data.Allowed {
			renderPage(w, tmpl, "roles.html", data)
			return
		}

		data.UserName = user.DisplayName
		data.Role = user.Role
		data.Department = user.Department
		data.FetchFailed = reg.LastError() != nil

		perms, err := s.api.Permissions(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			data.Error = errorBanner(err)
			renderPage(w, tmpl, "roles.html", data)
			return
		}

		table := view.Table[string]{
			Columns: []view.Column[string]{
				{Label: "Permission", Value: func(p string) string { return p }},
			},
			Rows:         perms,
			EmptyMessage: "No permissions granted.",
			SearchAction: RouteRoles,
		}
		tableHTML, renderErr := table.Render()
		if renderErr != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		data.Permissions = tableHTML

		renderPage(w, tmpl, "roles.html", data)
	}
}
