// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package gate decides whether a session may open a protected page.
package gate

import (
	"github.com/canonical/autocrm/internal/types"
)

const LoginPath = "/auth/login"

// RequireAny admits every authenticated user regardless of role.
const RequireAny = types.RoleNone

type Outcome int

const (
	Pending Outcome = iota
	RedirectLogin
	RedirectHome
	Allow
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Decision is the result of Authorize. Target is set for redirects, From
// keeps the requested path for the login redirect.
type Decision struct {
	Outcome Outcome
	Target  string
	From    string
}

// Session is the part of the client session the gate looks at.
type Session struct {
	Loading bool
	UserID  string
	Role    types.Role
}

// HomeFor maps a role to its landing page.
func HomeFor(role types.Role) string {
	switch role {
	case types.RoleCompanyAdmin:
		return "/company/dashboard"
	case types.RoleAgent:
		return "/agent/dashboard"
	case types.RoleCustomer:
		return "/dashboard"
	}
	return "/"
}

// Authorize evaluates the session against the role a page requires. A
// mismatching role is sent to the landing page of the role it holds.
func Authorize(s Session, required types.Role, path string) Decision {
	switch {
	case s.Loading:
		return Decision{Outcome: Pending}
	case s.UserID == "":
		return Decision{Outcome: RedirectLogin, Target: LoginPath, From: path}
	case required != RequireAny && s.Role != required:
		return Decision{Outcome: RedirectHome, Target: HomeFor(s.Role)}
	}
	return Decision{Outcome: Allow}
}
