// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package routes gates navigation on session state.
//
// Guards are pure functions of the session at evaluation time; nothing is
// cached between evaluations and nothing waits. A Redirect decision cancels
// the in-progress navigation and issues a new one to the indicated path.
package routes

import "github.com/jeranaias/securebank-tui/internal/session"

// =============================================================================
// PATHS
// =============================================================================

// Navigation paths, mirroring the portal's route table.
const (
	PathHome       = "/home"
	PathLogin      = "/login"
	PathAdminLogin = "/admin-login"
	PathRegister   = "/register"
	PathDashboard  = "/dashboard"
	PathAccount    = "/account"
	PathCustomer   = "/customer"
	PathAdmin      = "/admin"
)

// =============================================================================
// GUARDS
// =============================================================================

// Guard is a pre-navigation check. Two variants share one evaluation
// contract.
type Guard int

const (
	// None performs no check.
	None Guard = iota
	// AuthRequired redirects unauthenticated users to the login page.
	AuthRequired
	// GuestOnly redirects authenticated users to the dashboard.
	GuestOnly
)

// Decision is the result of evaluating a guard.
type Decision struct {
	allowed  bool
	redirect string
}

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool { return d.allowed }

// RedirectTo returns the replacement path for a denied navigation, or ""
// when the navigation was allowed.
func (d Decision) RedirectTo() string { return d.redirect }

// Allow is the decision that lets a navigation proceed.
func Allow() Decision { return Decision{allowed: true} }

// Redirect is the decision that cancels the navigation in favor of path.
func Redirect(path string) Decision { return Decision{redirect: path} }

// Decide evaluates the guard against the current session state. The target
// path itself does not influence the decision; it is part of the contract
// so callers evaluate at navigation time rather than caching results.
func (g Guard) Decide(store *session.Store, targetPath string) Decision {
	switch g {
	case AuthRequired:
		if !store.IsAuthenticated() {
			return Redirect(PathLogin)
		}
		return Allow()
	case GuestOnly:
		if store.IsAuthenticated() {
			return Redirect(PathDashboard)
		}
		return Allow()
	default:
		return Allow()
	}
}

// =============================================================================
// ROUTE TABLE
// =============================================================================

// table maps paths to their guard.
var table = map[string]Guard{
	PathHome:       None,
	PathAdminLogin: None,
	PathLogin:      GuestOnly,
	PathRegister:   GuestOnly,
	PathDashboard:  AuthRequired,
	PathAccount:    AuthRequired,
	PathCustomer:   AuthRequired,
	PathAdmin:      AuthRequired,
}

// GuardFor returns the guard for path. Unknown paths report ok=false; the
// portal sends those to the home page.
func GuardFor(path string) (Guard, bool) {
	g, ok := table[path]
	return g, ok
}

// Resolve applies the route table to a navigation request and returns the
// path that should actually be shown. Unknown paths resolve to home. At
// most one redirect is ever needed: guard targets (/login, /dashboard,
// /home) all allow their own audience.
func Resolve(store *session.Store, targetPath string) string {
	g, ok := GuardFor(targetPath)
	if !ok {
		return PathHome
	}
	if d := g.Decide(store, targetPath); !d.Allowed() {
		return d.RedirectTo()
	}
	return targetPath
}
