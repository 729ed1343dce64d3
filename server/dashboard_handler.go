package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/gate"
	"github.com/ledgerline/erp-portal/view"
)

type dashboardData struct {
	pageBase
	UserName     string
	Role         string
	FinancePanel template.HTML
	RecentOrders template.HTML
}

// DashboardHandler renders the landing page: a greeting, a finance summary
// for users allowed to see it, and the most recent sales orders.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl := mustParsePage("dashboard.html")

	financePanel := func(summary erpapi.FinanceSummary) template.HTML {
		return template.HTML(fmt.Sprintf(
			`<div class="summary-cards">`+
				`<div class="card"><span class="card-label">Revenue</span><span class="card-value">%.2f</span></div>`+
				`<div class="card"><span class="card-label">Outstanding</span><span class="card-value">%.2f</span></div>`+
				`<div class="card"><span class="card-label">Overdue</span><span class="card-value">%.2f</span></div>`+
				`<div class="card"><span class="card-label">Open invoices</span><span class="card-value">%d</span></div>`+
				`</div>`,
			summary.Revenue, summary.Outstanding, summary.Overdue, summary.OpenInvoices))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		_, reg, ok := s.sessionRegistry(r)
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := dashboardData{pageBase: s.pageFor(r, "Dashboard")}

		var subject *gate.Subject
		user, err := s.api.Me(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			log.Warn().Err(err).Msg("could not load current user for dashboard")
		} else {
			data.UserName = user.DisplayName
			data.Role = user.Role
			subject = &gate.Subject{Role: user.Role, Department: user.Department}
		}

		// Finance numbers show only to management roles that also hold the
		// finance permission. Both checks fail closed.
		financeAllowed := reg.Has(PermFinanceView) &&
			gate.Allowed(subject, gate.Requirement{Roles: []string{"admin", "manager"}})
		if financeAllowed {
			summary, err := s.api.FetchFinanceSummary(r.Context())
			if err != nil {
				if s.redirectIfLoggedOut(w, r, err) {
					return
				}
				data.Error = errorBanner(err)
			} else {
				data.FinancePanel = view.Gated(true, financePanel(summary), false, "")
			}
		}

		orders, err := s.api.SalesOrders(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			if data.Error == "" {
				data.Error = errorBanner(err)
			}
		} else {
			if len(orders) > 5 {
				orders = orders[:5]
			}
			ordersHTML, renderErr := salesOrdersTable(orders, "").Render()
			if renderErr == nil {
				data.RecentOrders = ordersHTML
			}
		}

		renderPage(w, tmpl, "dashboard.html", data)
	}
}
