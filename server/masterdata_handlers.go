package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/view"
)

// masterDataConfig parameterizes the shared list/create/deactivate shell for
// one master-data entity. The handlers below never touch entity fields
// directly; everything entity-specific flows through this config.
type masterDataConfig[T any] struct {
	Title        string
	Singular     string
	PagePath     string
	EmptyMessage string

	Columns        []view.Column[T]
	ID             func(T) string
	DeactivatePath func(id string) string

	List       func(r *http.Request, search string) ([]T, error)
	Create     func(r *http.Request, form url.Values) error
	Fields     func(form url.Values, fieldErrors map[string]string) []view.ModalField
	Deactivate func(r *http.Request, id string) error
}

type entityPageData struct {
	pageBase
	Table template.HTML
	Modal template.HTML
}

func (cfg masterDataConfig[T]) table(rows []T, search string) view.Table[T] {
	return view.Table[T]{
		Columns:      cfg.Columns,
		Rows:         rows,
		EmptyMessage: cfg.EmptyMessage,
		SearchAction: cfg.PagePath,
		SearchQuery:  search,
		AddURL:       cfg.PagePath + "?modal=new",
		AddLabel:     "Add " + cfg.Singular,
		Actions: []view.RowAction[T]{
			{
				Label:  "Deactivate",
				Method: http.MethodPost,
				URL:    func(row T) string { return cfg.DeactivatePath(cfg.ID(row)) },
			},
		},
	}
}

func (cfg masterDataConfig[T]) newModal(fields []view.ModalField) *view.Modal {
	m := &view.Modal{
		Title:     "New " + cfg.Singular,
		Action:    cfg.PagePath,
		CancelURL: cfg.PagePath,
		Fields:    fields,
	}
	m.Open(nil)
	return m
}

// renderEntityPage fetches the list and renders the page. A fetch failure
// renders the empty table with a banner instead of a blank screen. The modal
// argument may be nil.
func renderEntityPage[T any](s *Server, cfg masterDataConfig[T], tmpl *template.Template, w http.ResponseWriter, r *http.Request, modal *view.Modal, banner string) {
	search := r.URL.Query().Get("search")

	rows, err := cfg.List(r, search)
	if err != nil {
		if s.redirectIfLoggedOut(w, r, err) {
			return
		}
		if banner == "" {
			banner = errorBanner(err)
		}
		rows = nil
	}

	tableHTML, err := cfg.table(rows, search).Render()
	if err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var modalHTML template.HTML
	if modal != nil {
		modalHTML, err = modal.Render()
		if err != nil {
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
	}

	data := entityPageData{
		pageBase: s.pageFor(r, cfg.Title),
		Table:    tableHTML,
		Modal:    modalHTML,
	}
	if data.Error == "" {
		data.Error = banner
	}
	if data.Error == "" {
		data.Error = r.URL.Query().Get("error")
	}
	renderPage(w, tmpl, "entity_list.html", data)
}

// masterDataPageHandler serves the list screen; ?modal=new opens the create
// modal on top of it.
func masterDataPageHandler[T any](s *Server, cfg masterDataConfig[T]) http.HandlerFunc {
	tmpl := mustParsePage("entity_list.html")

	return func(w http.ResponseWriter, r *http.Request) {
		var modal *view.Modal
		if r.URL.Query().Get("modal") == "new" {
			modal = cfg.newModal(cfg.Fields(nil, nil))
		}
		renderEntityPage(s, cfg, tmpl, w, r, modal, "")
	}
}

// masterDataCreateHandler submits the create form. On success the browser is
// redirected back to the list (refetch after mutation); on failure the page
// re-renders with the modal still open and the error surfaced in it.
func masterDataCreateHandler[T any](s *Server, cfg masterDataConfig[T]) http.HandlerFunc {
	tmpl := mustParsePage("entity_list.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		modal := cfg.newModal(cfg.Fields(r.PostForm, nil))
		if !modal.BeginSubmit() {
			// A duplicate submit while one is in flight is a no-op.
			renderEntityPage(s, cfg, tmpl, w, r, modal, "")
			return
		}

		if err := cfg.Create(r, r.PostForm); err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			var fieldErrors map[string]string
			if apiErr, ok := erpapi.AsAPIError(err); ok && apiErr.IsValidation() {
				fieldErrors = apiErr.Details
			}
			modal.FailSubmit(errorBanner(err))
			modal.Fields = cfg.Fields(r.PostForm, fieldErrors)
			renderEntityPage(s, cfg, tmpl, w, r, modal, "")
			return
		}

		modal.Close()
		http.Redirect(w, r, cfg.PagePath, http.StatusSeeOther)
	}
}

// masterDataDeactivateHandler deactivates one record and refetches the list.
func masterDataDeactivateHandler[T any](s *Server, cfg masterDataConfig[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			http.Error(w, "missing id", http.StatusBadRequest)
			return
		}

		if err := cfg.Deactivate(r, id); err != nil {
			if s.redirectIfLoggedOut(w, r, err) {
				return
			}
			target := cfg.PagePath + "?error=" + url.QueryEscape(errorBanner(err))
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, cfg.PagePath, http.StatusSeeOther)
	}
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func (s *Server) categoriesConfig() masterDataConfig[erpapi.Category] {
	return masterDataConfig[erpapi.Category]{
		Title:        "Categories",
		Singular:     "Category",
		PagePath:     RouteCategories,
		EmptyMessage: "No categories yet. Add the first one.",
		Columns: []view.Column[erpapi.Category]{
			{Label: "Name", Value: func(c erpapi.Category) string { return c.Name }},
			{Label: "Description", Value: func(c erpapi.Category) string { return c.Description }},
			{Label: "Status", Value: func(c erpapi.Category) string { return activeLabel(c.Active) }},
		},
		ID:             func(c erpapi.Category) string { return c.ID },
		DeactivatePath: func(id string) string { return RouteCategories + "/" + url.PathEscape(id) + "/deactivate" },
		List: func(r *http.Request, search string) ([]erpapi.Category, error) {
			return s.api.ListCategories(r.Context(), search)
		},
		Create: func(r *http.Request, form url.Values) error {
			_, err := s.api.CreateCategory(r.Context(), erpapi.CategoryInput{
				Name:        form.Get("name"),
				Description: form.Get("description"),
			})
			return err
		},
		Fields: func(form url.Values, fieldErrors map[string]string) []view.ModalField {
			return []view.ModalField{
				{Name: "name", Label: "Name", Type: "text", Value: form.Get("name"), Error: fieldErrors["name"]},
				{Name: "description", Label: "Description", Type: "text", Value: form.Get("description"), Error: fieldErrors["description"]},
			}
		},
		Deactivate: func(r *http.Request, id string) error {
			return s.api.DeactivateCategory(r.Context(), id)
		},
	}
}

func (s *Server) taxesConfig() masterDataConfig[erpapi.Tax] {
	return masterDataConfig[erpapi.Tax]{
		Title:        "Taxes",
		Singular:     "Tax",
		PagePath:     RouteTaxes,
		EmptyMessage: "No taxes configured.",
		Columns: []view.Column[erpapi.Tax]{
			{Label: "Name", Value: func(t erpapi.Tax) string { return t.Name }},
			{Label: "Rate", Value: func(t erpapi.Tax) string { return strconv.FormatFloat(t.RatePercent, 'f', 2, 64) + " %" }},
			{Label: "Status", Value: func(t erpapi.Tax) string { return activeLabel(t.Active) }},
		},
		ID:             func(t erpapi.Tax) string { return t.ID },
		DeactivatePath: func(id string) string { return RouteTaxes + "/" + url.PathEscape(id) + "/deactivate" },
		List: func(r *http.Request, search string) ([]erpapi.Tax, error) {
			return s.api.ListTaxes(r.Context(), search)
		},
		Create: func(r *http.Request, form url.Values) error {
			rate, err := strconv.ParseFloat(form.Get("rate_percent"), 64)
			if err != nil {
				return &erpapi.APIError{
					Message: "Rate must be a number",
					Code:    erpapi.CodeValidation,
					Details: map[string]string{"rate_percent": "must be a number"},
					Status:  http.StatusBadRequest,
				}
			}
			_, err = s.api.CreateTax(r.Context(), erpapi.TaxInput{
				Name:        form.Get("name"),
				RatePercent: rate,
			})
			return err
		},
		Fields: func(form url.Values, fieldErrors map[string]string) []view.ModalField {
			return []view.ModalField{
				{Name: "name", Label: "Name", Type: "text", Value: form.Get("name"), Error: fieldErrors["name"]},
				{Name: "rate_percent", Label: "Rate (%)", Type: "number", Value: form.Get("rate_percent"), Error: fieldErrors["rate_percent"]},
			}
		},
		Deactivate: func(r *http.Request, id string) error {
			return s.api.DeactivateTax(r.Context(), id)
		},
	}
}

func (s *Server) priceListsConfig() masterDataConfig[erpapi.PriceList] {
	return masterDataConfig[erpapi.PriceList]{
		Title:        "Price Lists",
		Singular:     "Price List",
		PagePath:     RoutePriceLists,
		EmptyMessage: "No price lists yet.",
		Columns: []view.Column[erpapi.PriceList]{
			{Label: "Name", Value: func(p erpapi.PriceList) string { return p.Name }},
			{Label: "Currency", Value: func(p erpapi.PriceList) string { return p.Currency }},
			{Label: "Status", Value: func(p erpapi.PriceList) string { return activeLabel(p.Active) }},
		},
		ID:             func(p erpapi.PriceList) string { return p.ID },
		DeactivatePath: func(id string) string { return RoutePriceLists + "/" + url.PathEscape(id) + "/deactivate" },
		List: func(r *http.Request, search string) ([]erpapi.PriceList, error) {
			return s.api.ListPriceLists(r.Context(), search)
		},
		Create: func(r *http.Request, form url.Values) error {
			_, err := s.api.CreatePriceList(r.Context(), erpapi.PriceListInput{
				Name:     form.Get("name"),
				Currency: form.Get("currency"),
			})
			return err
		},
		Fields: func(form url.Values, fieldErrors map[string]string) []view.ModalField {
			return []view.ModalField{
				{Name: "name", Label: "Name", Type: "text", Value: form.Get("name"), Error: fieldErrors["name"]},
				{Name: "currency", Label: "Currency", Type: "text", Value: form.Get("currency"), Error: fieldErrors["currency"]},
			}
		},
		Deactivate: func(r *http.Request, id string) error {
			return s.api.DeactivatePriceList(r.Context(), id)
		},
	}
}

func (s *Server) CategoriesPageHandler() http.HandlerFunc {
	return masterDataPageHandler(s, s.categoriesConfig())
}

func (s *Server) CategoriesCreateHandler() http.HandlerFunc {
	return masterDataCreateHandler(s, s.categoriesConfig())
}

func (s *Server) CategoriesDeactivateHandler() http.HandlerFunc {
	return masterDataDeactivateHandler(s, s.categoriesConfig())
}

func (s *Server) TaxesPageHandler() http.HandlerFunc {
	return masterDataPageHandler(s, s.taxesConfig())
}

func (s *Server) TaxesCreateHandler() http.HandlerFunc {
	return masterDataCreateHandler(s, s.taxesConfig())
}

func (s *Server) TaxesDeactivateHandler() http.HandlerFunc {
	return masterDataDeactivateHandler(s, s.taxesConfig())
}

func (s *Server) PriceListsPageHandler() http.HandlerFunc {
	return masterDataPageHandler(s, s.priceListsConfig())
}

func (s *Server) PriceListsCreateHandler() http.HandlerFunc {
	return masterDataCreateHandler(s, s.priceListsConfig())
}

func (s *Server) PriceListsDeactivateHandler() http.HandlerFunc {
	return masterDataDeactivateHandler(s, s.priceListsConfig())
}
