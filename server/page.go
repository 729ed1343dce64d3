package server

import (
	"net/http"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/permissions"
	"github.com/ledgerline/erp-portal/session"
)

// Permission tokens gating portal navigation and pages. The backend owns the
// vocabulary; these are the ones this portal consumes.
const (
	PermFinanceView = "finance.view"
	PermRolesManage = "roles.manage"
)

type navLink struct {
	Label  string
	Href   string
	Active bool
}

// pageBase carries what every page template needs: chrome, the signed-in
// user's name, and a page-level error banner.
type pageBase struct {
	AppName  string
	Title    string
	LoggedIn bool
	Nav      []navLink
	Error    string
}

// pageFor assembles the base model for a guarded page. Navigation entries
// gated by permissions only appear once the session's registry reports them;
// before the fetch resolves the links stay hidden (fail closed).
func (s *Server) pageFor(r *http.Request, title string) pageBase {
	base := pageBase{
		AppName: s.config.AppName,
		Title:   title,
	}

	sess, ok := session.FromContext(r.Context())
	if !ok {
		return base
	}
	base.LoggedIn = true

	reg := s.registryFor(sess)
	reg.Load(r.Context())

	links := []navLink{
		{Label: "Dashboard", Href: RouteDashboard},
		{Label: "Categories", Href: RouteCategories},
		{Label: "Taxes", Href: RouteTaxes},
		{Label: "Price Lists", Href: RoutePriceLists},
		{Label: "Sales Orders", Href: RouteSalesOrders},
		{Label: "Sales Invoices", Href: RouteSalesInvoices},
		{Label: "Inventory", Href: RouteInventory},
		{Label: "Purchasing", Href: RoutePurchasing},
		{Label: "Reports", Href: RouteReports},
	}
	if reg.Has(PermFinanceView) {
		links = append(links, navLink{Label: "Finance", Href: RouteFinance})
	}
	if reg.Has(PermRolesManage) {
		links = append(links, navLink{Label: "Roles", Href: RouteRoles})
	}

	for i := range links {
		links[i].Active = links[i].Href == r.URL.Path
	}
	base.Nav = links

	return base
}

// sessionRegistry returns the current session and its permission registry.
func (s *Server) sessionRegistry(r *http.Request) (*session.Session, *permissions.Registry, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return nil, nil, false
	}
	return sess, s.registryFor(sess), true
}

// redirectIfLoggedOut handles the one error class pages never render
// themselves: a 401 already tore the session down via the client hook, so
// the only thing left is to send the browser back to login. Reports whether
// it wrote a response.
func (s *Server) redirectIfLoggedOut(w http.ResponseWriter, r *http.Request, err error) bool {
	apiErr, ok := erpapi.AsAPIError(err)
	if !ok || !apiErr.IsAuthentication() {
		return false
	}
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	return true
}

// errorBanner maps a fetch failure to the page-level message shown in the
// error banner. The previous (possibly empty) view state stays rendered
// underneath; a failing fetch never blanks the screen.
func errorBanner(err error) string {
	if apiErr, ok := erpapi.AsAPIError(err); ok {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}
