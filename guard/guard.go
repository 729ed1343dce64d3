// Package guard decides, for every navigation, whether the current visitor
// may see the requested page or must be redirected to the right entry point.
// The decision is a pure function of (token present, active-tenant claim,
// path), which keeps it testable without an HTTP harness; the server layer
// is a thin consumer.
package guard

import "strings"

// Entry-point paths the guard redirects between. The server registers its
// handlers on the same paths.
const (
	PathLogin      = "/login"
	PathRegister   = "/register"
	PathOnboarding = "/onboarding"
	PathDashboard  = "/dashboard"
)

// Decision is the terminal state of one guard evaluation: either render the
// requested page or redirect and render nothing.
type Decision struct {
	Authorized bool
	RedirectTo string
}

func authorized() Decision {
	return Decision{Authorized: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Evaluate applies the routing table:
//
//	no token, path outside {login, register}      -> redirect to login
//	no token, path in {login, register}           -> authorized
//	token, no active tenant, path not onboarding  -> redirect to onboarding
//	token, path in {login, register}              -> redirect to dashboard,
//	                                                 or onboarding without a tenant
//	otherwise                                     -> authorized
//
// The onboarding surface includes its sub-paths (the verify submission), so a
// tenantless session can actually complete the flow. Evaluate runs on every
// navigation, not once at login.
func Evaluate(hasToken bool, activeTenantID, path string) Decision {
	entryPage := path == PathLogin || path == PathRegister
	onboarding := path == PathOnboarding || strings.HasPrefix(path, PathOnboarding+"/")

	if !hasToken {
		if entryPage {
			return authorized()
		}
		return redirect(PathLogin)
	}

	if activeTenantID == "" && !onboarding {
		return redirect(PathOnboarding)
	}

	if entryPage {
		if activeTenantID == "" {
			return redirect(PathOnboarding)
		}
		return redirect(PathDashboard)
	}

	return authorized()
}
