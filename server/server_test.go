package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/erp-portal/erpapi"
	"github.com/ledgerline/erp-portal/internal/config"
	"github.com/ledgerline/erp-portal/server"
	"github.com/ledgerline/erp-portal/session"
)

// fakeERP is a minimal stand-in for the ERP backend covering the endpoints
// the portal calls during these tests.
type fakeERP struct {
	t     *testing.T
	token string

	mu          sync.Mutex
	rejectAll   bool
	categories  []erpapi.Category
	deactivated []string
	permissions []string
}

func newFakeERP(t *testing.T, tenantID string) (*fakeERP, *httptest.Server) {
	t.Helper()

	claims := jwt.MapClaims{"sub": "user-1"}
	if tenantID != "" {
		claims["active_tenant_id"] = tenantID
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	f := &fakeERP{
		t:     t,
		token: token,
		categories: []erpapi.Category{
			{ID: "c1", Name: "Electronics", Description: "Devices", Active: true},
			{ID: "c2", Name: "Stationery", Description: "Office supplies", Active: true},
		},
		permissions: []string{"finance.view"},
	}

	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeERP) reply(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": true, "data": data}
	require.NoError(f.t, json.NewEncoder(w).Encode(body))
}

func (f *fakeERP) authorized(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	reject := f.rejectAll
	f.mu.Unlock()

	if reject || r.Header.Get("Authorization") != "Bearer "+f.token {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func (f *fakeERP) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.reply(w, http.StatusOK, erpapi.LoginResult{AccessToken: f.token, RefreshToken: "refresh-1"})
	})

	mux.HandleFunc("GET /auth/permissions", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		perms := f.permissions
		f.mu.Unlock()
		f.reply(w, http.StatusOK, perms)
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.reply(w, http.StatusOK, erpapi.User{ID: "user-1", DisplayName: "Ada Lovelace", Role: "admin", Department: "management"})
	})

	mux.HandleFunc("GET /sales/orders", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.reply(w, http.StatusOK, []erpapi.SalesOrder{})
	})

	mux.HandleFunc("GET /finance/summary", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.reply(w, http.StatusOK, erpapi.FinanceSummary{Revenue: 1200, OpenInvoices: 3})
	})

	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		search := r.URL.Query().Get("search")
		f.mu.Lock()
		var out []erpapi.Category
		for _, c := range f.categories {
			if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
				out = append(out, c)
			}
		}
		f.mu.Unlock()
		f.reply(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /categories", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		var input erpapi.CategoryInput
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&input))
		if input.Name == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			require.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{
				"message":    "Name is required",
				"error_code": "VALIDATION_ERROR",
				"details":    map[string]string{"name": "Name is required"},
			}))
			return
		}
		created := erpapi.Category{ID: "c3", Name: input.Name, Description: input.Description, Active: true}
		f.mu.Lock()
		f.categories = append(f.categories, created)
		f.mu.Unlock()
		f.reply(w, http.StatusCreated, created)
	})

	mux.HandleFunc("DELETE /categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.deactivated = append(f.deactivated, r.PathValue("id"))
		f.mu.Unlock()
		f.reply(w, http.StatusOK, nil)
	})

	mux.HandleFunc("POST /config/verify", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.reply(w, http.StatusOK, erpapi.ConfigResult{RedirectURL: server.RouteDashboard})
	})

	return mux
}

func newPortal(t *testing.T, backendURL string) *server.Server {
	t.Helper()
	cfg := config.Config{
		Env:               "TEST",
		AppName:           "ERP Portal",
		SessionCookieName: "portal_session",
		SessionTTL:        time.Hour,
	}
	sessions := session.NewManager(session.NewInMemoryRepo(), cfg.SessionCookieName, cfg.SessionTTL)
	api := erpapi.NewClient(backendURL, erpapi.Options{RetryMax: 0})
	return server.New(cfg, sessions, api)
}

func doRequest(portal *server.Server, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	portal.ServeHTTP(w, r)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// login runs the full login flow and returns the session cookie.
func login(t *testing.T, portal *server.Server) *http.Cookie {
	t.Helper()
	w := doRequest(portal, postForm(server.RouteLogin, url.Values{
		"email":    {"ada@example.com"},
		"password": {"correct-horse"},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "portal_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestLoginFlow(t *testing.T) {
	t.Run("successful login redirects to the dashboard", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)

		w := doRequest(portal, postForm(server.RouteLogin, url.Values{
			"email":    {"ada@example.com"},
			"password": {"correct-horse"},
		}))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteDashboard, w.Header().Get("Location"))
		require.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("token without tenant lands in onboarding", func(t *testing.T) {
		_, backend := newFakeERP(t, "")
		portal := newPortal(t, backend.URL)

		w := doRequest(portal, postForm(server.RouteLogin, url.Values{
			"email":    {"ada@example.com"},
			"password": {"correct-horse"},
		}))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteOnboarding, w.Header().Get("Location"))
	})

	t.Run("bad credentials re-render the form with the backend message", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)

		w := doRequest(portal, postForm(server.RouteLogin, url.Values{
			"email":    {"ada@example.com"},
			"password": {"wrong"},
		}))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "ada@example.com")
	})

	t.Run("missing fields never reach the backend", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)

		w := doRequest(portal, postForm(server.RouteLogin, url.Values{"email": {"ada@example.com"}}))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Email and password are required")
	})

	t.Run("logout clears the session", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteLogout, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteLogin, w.Header().Get("Location"))

		r = httptest.NewRequest(http.MethodGet, server.RouteDashboard, nil)
		r.AddCookie(cookie)
		w = doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteLogin, w.Header().Get("Location"))
	})
}

func TestRouteGuard(t *testing.T) {
	t.Run("guarded pages redirect anonymous visitors to login", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)

		for _, path := range []string{server.RouteDashboard, server.RouteCategories, server.RouteFinance, "/"} {
			w := doRequest(portal, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusSeeOther, w.Code, path)
			require.Equal(t, server.RouteLogin, w.Header().Get("Location"), path)
		}
	})

	t.Run("entry pages render for anonymous visitors", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)

		w := doRequest(portal, httptest.NewRequest(http.MethodGet, server.RouteLogin, nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Sign in")
	})

	t.Run("logged-in visitors bounce off the login page", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteLogin, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteDashboard, w.Header().Get("Location"))
	})

	t.Run("root redirects a logged-in visitor to the dashboard", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteDashboard, w.Header().Get("Location"))
	})
}

func TestMasterDataPages(t *testing.T) {
	t.Run("category list renders backend rows", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteCategories, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Electronics")
		require.Contains(t, body, "Stationery")
	})

	t.Run("search narrows the list", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteCategories+"?search=elec", nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Electronics")
		require.NotContains(t, body, "Stationery")
	})

	t.Run("modal=new opens the create modal", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteCategories+"?modal=new", nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "New Category")
	})

	t.Run("create redirects back to the list", func(t *testing.T) {
		f, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := postForm(server.RouteCategories, url.Values{"name": {"Furniture"}, "description": {"Desks"}})
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteCategories, w.Header().Get("Location"))

		f.mu.Lock()
		defer f.mu.Unlock()
		require.Len(t, f.categories, 3)
		require.Equal(t, "Furniture", f.categories[2].Name)
	})

	t.Run("validation failure keeps the modal open with field errors", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := postForm(server.RouteCategories, url.Values{"name": {""}, "description": {"Desks"}})
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "New Category")
		require.Contains(t, body, "Name is required")
		require.Contains(t, body, "Desks")
	})

	t.Run("deactivate posts to the backend and refetches", func(t *testing.T) {
		f, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodPost, "/categories/c1/deactivate", nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteCategories, w.Header().Get("Location"))

		f.mu.Lock()
		defer f.mu.Unlock()
		require.Equal(t, []string{"c1"}, f.deactivated)
	})
}

func TestBackendUnauthorized(t *testing.T) {
	t.Run("a 401 tears the session down and sends the browser to login", func(t *testing.T) {
		f, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		f.mu.Lock()
		f.rejectAll = true
		f.mu.Unlock()

		r := httptest.NewRequest(http.MethodGet, server.RouteCategories, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteLogin, w.Header().Get("Location"))

		// The session is gone; the guard bounces the stale cookie.
		f.mu.Lock()
		f.rejectAll = false
		f.mu.Unlock()

		r = httptest.NewRequest(http.MethodGet, server.RouteCategories, nil)
		r.AddCookie(cookie)
		w = doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteLogin, w.Header().Get("Location"))
	})
}

func TestDashboard(t *testing.T) {
	t.Run("greets the user and shows gated finance numbers", func(t *testing.T) {
		_, backend := newFakeERP(t, "tenant-1")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteDashboard, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		require.Contains(t, body, "Ada Lovelace")
		require.Contains(t, body, "1200.00")
	})

	t.Run("finance panel stays hidden without the permission", func(t *testing.T) {
		f, backend := newFakeERP(t, "tenant-1")
		f.mu.Lock()
		f.permissions = nil
		f.mu.Unlock()
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteDashboard, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotContains(t, w.Body.String(), "1200.00")
	})
}

func TestOnboarding(t *testing.T) {
	t.Run("tenantless session can verify and move on", func(t *testing.T) {
		_, backend := newFakeERP(t, "")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteOnboarding, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusOK, w.Code)

		r = postForm(server.RouteOnboardingVerify, url.Values{
			"company_name": {"Ledgerline GmbH"},
			"tax_number":   {"DE123456789"},
		})
		r.AddCookie(cookie)
		w = doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteDashboard, w.Header().Get("Location"))
	})

	t.Run("tenantless session is pinned to onboarding", func(t *testing.T) {
		_, backend := newFakeERP(t, "")
		portal := newPortal(t, backend.URL)
		cookie := login(t, portal)

		r := httptest.NewRequest(http.MethodGet, server.RouteCategories, nil)
		r.AddCookie(cookie)
		w := doRequest(portal, r)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, server.RouteOnboarding, w.Header().Get("Location"))
	})
}
