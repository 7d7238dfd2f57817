// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agents

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/types"
)

var errorStatus = map[error]int{
	ErrForbidden:      http.StatusForbidden,
	ErrNoCompany:      http.StatusNotFound,
	ErrInviteNotFound: http.StatusNotFound,
	ErrInviteExpired:  http.StatusGone,
	ErrEmailMismatch:  http.StatusForbidden,
	ErrAlreadyAgent:   http.StatusConflict,
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/api/v0/company/agents", a.listAgents)
	r.Delete("/api/v0/company/agents/{id}", a.removeAgent)
	r.Get("/api/v0/company/invites", a.listInvites)
	r.Post("/api/v0/company/invites", a.invite)
	r.Post("/api/v0/invites/{token}/accept", a.accept)
}

func (a *API) fail(w http.ResponseWriter, err error) {
	if httptypes.StatusFor(err, errorStatus) >= http.StatusInternalServerError {
		a.logger.Errorf("agents request failed: %v", err)
	}
	httptypes.WriteServiceError(w, err, errorStatus)
}

func (a *API) principal(w http.ResponseWriter, r *http.Request) (*types.Principal, bool) {
	p, ok := identity.PrincipalFromContext(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	}
	return p, ok
}

func (a *API) listAgents(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	agents, err := a.service.ListAgents(r.Context(), p)
	if err != nil {
		a.fail(w, err)
		return
	}
	if agents == nil {
		agents = []*types.Agent{}
	}

	httptypes.WriteJSON(w, http.StatusOK, agents)
}

func (a *API) removeAgent(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	if err := a.service.RemoveAgent(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		a.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listInvites(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	invites, err := a.service.ListInvites(r.Context(), p)
	if err != nil {
		a.fail(w, err)
		return
	}
	if invites == nil {
		invites = []*types.Invite{}
	}

	httptypes.WriteJSON(w, http.StatusOK, invites)
}

func (a *API) invite(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(inviteRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	invite, err := a.service.Invite(r.Context(), p, req.Email)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, invite)
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	agent, err := a.service.Accept(r.Context(), p, chi.URLParam(r, "token"))
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, agent)
}
