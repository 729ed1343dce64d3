package server

func (s *Server) initRoutes() {
	guarded := s.PageMiddleware(s.RouteGuardMiddleware)

	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), guarded...))

	// Login & logout
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmitHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))

	// Onboarding
	s.RegisterRouteHandler("GET "+RouteOnboarding, ChainMiddleware(s.OnboardingPageHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteOnboardingVerify, ChainMiddleware(s.OnboardingVerifyHandler(), guarded...))

	// Dashboard
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), guarded...))

	// Master data
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.CategoriesPageHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteCategories, ChainMiddleware(s.CategoriesCreateHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteCategoriesDeactivate, ChainMiddleware(s.CategoriesDeactivateHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteTaxes, ChainMiddleware(s.TaxesPageHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteTaxes, ChainMiddleware(s.TaxesCreateHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteTaxesDeactivate, ChainMiddleware(s.TaxesDeactivateHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RoutePriceLists, ChainMiddleware(s.PriceListsPageHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RoutePriceLists, ChainMiddleware(s.PriceListsCreateHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RoutePriceListsDeactivate, ChainMiddleware(s.PriceListsDeactivateHandler(), guarded...))

	// Sales documents
	s.RegisterRouteHandler("GET "+RouteSalesOrders, ChainMiddleware(s.SalesOrdersHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteSalesInvoices, ChainMiddleware(s.SalesInvoicesHandler(), guarded...))

	// Finance
	s.RegisterRouteHandler("GET "+RouteFinance, ChainMiddleware(s.FinanceHandler(), guarded...))

	// Administration
	s.RegisterRouteHandler("GET "+RouteRoles, ChainMiddleware(s.RolesHandler(), guarded...))

	// Placeholder feature pages
	s.RegisterRouteHandler("GET "+RouteInventory, ChainMiddleware(s.PlaceholderHandler("Inventory"), guarded...))
	s.RegisterRouteHandler("GET "+RoutePurchasing, ChainMiddleware(s.PlaceholderHandler("Purchasing"), guarded...))
	s.RegisterRouteHandler("GET "+RouteReports, ChainMiddleware(s.PlaceholderHandler("Reports"), guarded...))

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, FileServerHandler())
}
