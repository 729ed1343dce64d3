package server

import "github.com/ledgerline/erp-portal/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Entry points (shared with the route guard's decision table)
	RouteLogin      = guard.PathLogin
	RouteRegister   = guard.PathRegister
	RouteOnboarding = guard.PathOnboarding
	RouteDashboard  = guard.PathDashboard

	RouteLogout           = "/logout"
	RouteOnboardingVerify = "/onboarding/verify"

	// Master data
	RouteCategories           = "/categories"
	RouteCategoriesDeactivate = "/categories/{id}/deactivate"
	RouteTaxes                = "/taxes"
	RouteTaxesDeactivate      = "/taxes/{id}/deactivate"
	RoutePriceLists           = "/price-lists"
	RoutePriceListsDeactivate = "/price-lists/{id}/deactivate"

	// Sales documents
	RouteSalesOrders   = "/sales/orders"
	RouteSalesInvoices = "/sales/invoices"

	// Finance
	RouteFinance = "/finance"

	// Administration
	RouteRoles = "/roles"

	// Placeholder feature pages
	RouteInventory  = "/inventory"
	RoutePurchasing = "/purchasing"
	RouteReports    = "/reports"

	// Static assets
	RouteStaticCSS = "/css/{file}"
)
