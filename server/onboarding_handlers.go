package server

import (
	"net/http"
)

type onboardingPageData struct {
	pageBase
	CompanyName string
	TaxNumber   string
}

// OnboardingPageHandler displays the tenant-setup page shown to sessions
// whose claims carry no active tenant yet.
func (s *Server) OnboardingPageHandler() http.HandlerFunc {
	tmpl := mustParsePage("onboarding.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := onboardingPageData{pageBase: s.pageFor(r, "Set up your company")}
		data.Error = r.URL.Query().Get("error")
		renderPage(w, tmpl, "onboarding.html", data)
	}
}

// OnboardingVerifyHandler submits company details for backend verification
// and follows whatever redirect the backend answers with.
func (s *Server) OnboardingVerifyHandler() http.HandlerFunc {
	tmpl := mustParsePage("onboarding.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		payload := map[string]string{
			"company_name": r.FormValue("company_name"),
			"tax_number":   r.FormValue("tax_number"),
		}

		result, err := s.api.VerifyConfig(r.Context(), payload)
		if err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			data := onboardingPageData{
				pageBase:    s.pageFor(r, "Set up your company"),
				CompanyName: payload["company_name"],
				TaxNumber:   payload["tax_number"],
			}
			data.Error = errorBanner(err)
			renderPage(w, tmpl, "onboarding.html", data)
			return
		}

		target := result.RedirectURL
		if target == "" {
			target = RouteDashboard
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
