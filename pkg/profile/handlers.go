// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/types"
)

// Profile is the role assignment of the caller. Role is empty until one is
// assigned.
type Profile struct {
	UserID    string     `json:"user_id" yaml:"user_id"`
	Email     string     `json:"email,omitempty" yaml:"email,omitempty"`
	Role      types.Role `json:"role" yaml:"role"`
	CompanyID string     `json:"company_id,omitempty" yaml:"company_id,omitempty"`
}

type API struct{}

func NewAPI() *API {
	return new(API)
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/api/v0/me", a.me)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	p, ok := identity.PrincipalFromContext(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, Profile{
		UserID:    p.UserID,
		Email:     p.Email,
		Role:      p.Role,
		CompanyID: p.CompanyID,
	})
}
