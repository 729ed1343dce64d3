package server

import "net/http"

type placeholderPageData struct {
	pageBase
	Feature string
}

// PlaceholderHandler renders the "coming soon" page used by feature areas
// that exist in navigation but have no screens yet.
func (s *Server) PlaceholderHandler(feature string) http.HandlerFunc {
	tmpl := mustParsePage("placeholder.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := placeholderPageData{
			pageBase: s.pageFor(r, feature),
			Feature:  feature,
		}
		renderPage(w, tmpl, "placeholder.html", data)
	}
}
