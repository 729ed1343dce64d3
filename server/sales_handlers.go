package server

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/view"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func salesOrdersTable(orders []erpapi.SalesOrder, search string) view.Table[erpapi.SalesOrder] {
	return view.Table[erpapi.SalesOrder]{
		Columns: []view.Column[erpapi.SalesOrder]{
			{Label: "Number", Value: func(o erpapi.SalesOrder) string { return o.Number }},
			{Label: "Customer", Value: func(o erpapi.SalesOrder) string { return o.Customer }},
			{Label: "Status", Value: func(o erpapi.SalesOrder) string { return o.Status }},
			{Label: "Total", Value: func(o erpapi.SalesOrder) string { return money(o.Total) }},
			{Label: "Ordered", Value: func(o erpapi.SalesOrder) string { return o.OrderedAt.Format("2006-01-02") }},
		},
		Rows:         orders,
		EmptyMessage: "No sales orders.",
		SearchAction: RouteSalesOrders,
		SearchQuery:  search,
	}
}

func salesInvoicesTable(invoices []erpapi.SalesInvoice, search string) view.Table[erpapi.SalesInvoice] {
	return view.Table[erpapi.SalesInvoice]{
		Columns: []view.Column[erpapi.SalesInvoice]{
			{Label: "Number", Value: func(i erpapi.SalesInvoice) string { return i.Number }},
			{Label: "Customer", Value: func(i erpapi.SalesInvoice) string { return i.Customer }},
			{Label: "Status", Value: func(i erpapi.SalesInvoice) string { return i.Status }},
			{Label: "Total", Value: func(i erpapi.SalesInvoice) string { return money(i.Total) }},
			{Label: "Issued", Value: func(i erpapi.SalesInvoice) string { return i.IssuedAt.Format("2006-01-02") }},
		},
		Rows:         invoices,
		EmptyMessage: "No invoices issued.",
		SearchAction: RouteSalesInvoices,
		SearchQuery:  search,
	}
}

// SalesOrdersHandler renders the read-only sales-order list.
func (s *Server) SalesOrdersHandler() http.HandlerFunc {
	tmpl := mustParsePage("entity_list.html")

	return func(w http.ResponseWriter, r *http.Request) {
		var banner string
		orders, err := s.api.SalesOrders(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			banner = errorBanner(err)
		}

		tableHTML, err := salesOrdersTable(orders, "").Render()
		if err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}

		data := entityPageData{
			pageBase: s.pageFor(r, "Sales Orders"),
			Table:    tableHTML,
			Modal:    template.HTML(""),
		}
		data.Error = banner
		renderPage(w, tmpl, "entity_list.html", data)
	}
}

// SalesInvoicesHandler renders the read-only sales-invoice list.
func (s *Server) SalesInvoicesHandler() http.HandlerFunc {
	tmpl := mustParsePage("entity_list.html")

	return func(w http.ResponseWriter, r *http.Request) {
		var banner string
		invoices, err := s.api.SalesInvoices(r.Context())
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			banner = errorBanner(err)
		}

		tableHTML, err := salesInvoicesTable(invoices, "").Render()
		if err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}

		data := entityPageData{
			pageBase: s.pageFor(r, "Sales Invoices"),
			Table:    tableHTML,
		}
		data.Error = banner
		renderPage(w, tmpl, "entity_list.html", data)
	}
}
