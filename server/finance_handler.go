package server

import (
	"html/template"
	"net/http"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/view"
)

type financePageData struct {
	pageBase
	Allowed  bool
	Summary  erpapi.FinanceSummary
	Invoices template.HTML
}

// FinanceHandler renders the finance summary and invoice list. The page is
// permission-gated: without finance.view the visitor sees the restricted
// placeholder, never the numbers.
func (s *Server) FinanceHandler() http.HandlerFunc {
	tmpl := mustParsePage("finance.html")

	return func(w http.ResponseWriter, r *http.Request) {
		_, reg, ok := s.sessionRegistry(r)
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := financePageData{pageBase: s.pageFor(r, "Finance")}
		data.Allowed = reg.Has(PermFinanceView)
		if !data.Allowed {
			renderPage(w, tmpl, "finance.html", data)
			return
		}

		summary, err := s.api.FetchFinanceSummary(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			data.Error = errorBanner(err)
		} else {
			data.Summary = summary
		}

		invoices, err := s.api.FinanceInvoices(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			if data.Error == "" {
				data.Error = errorBanner(err)
			}
		}

		table := view.Table[erpapi.FinanceInvoice]{
			Columns: []view.Column[erpapi.FinanceInvoice]{
				{Label: "Number", Value: func(i erpapi.FinanceInvoice) string { return i.Number }},
				{Label: "Customer", Value: func(i erpapi.FinanceInvoice) string { return i.Customer }},
				{Label: "Status", Value: func(i erpapi.FinanceInvoice) string { return i.Status }},
				{Label: "Total", Value: func(i erpapi.FinanceInvoice) string { return money(i.Total) }},
				{Label: "Due", Value: func(i erpapi.FinanceInvoice) string { return i.DueAt.Format("2006-01-02") }},
			},
			Rows:         invoices,
			EmptyMessage: "No open invoices.",
			SearchAction: RouteFinance,
		}
		tableHTML, renderErr := table.Render()
		if renderErr != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		data.Invoices = tableHTML

		renderPage(w, tmpl, "finance.html", data)
	}
}
