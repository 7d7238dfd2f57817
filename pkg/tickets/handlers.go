// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tickets

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/types"
)

var errorStatus = map[error]int{
	ErrForbidden:           http.StatusForbidden,
	ErrNoCompanyMembership: http.StatusForbidden,
	ErrCompanyNotVerified:  http.StatusUnprocessableEntity,
	ErrEmptyContent:        http.StatusBadRequest,
}

type updateTicketRequest struct {
	Status     *types.Status   `json:"status,omitempty"`
	Priority   *types.Priority `json:"priority,omitempty"`
	AssigneeID *string         `json:"assignee_id,omitempty"`
}

type messageRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

type noteRequest struct {
	Content   string `json:"content" validate:"required,max=10000"`
	IsPrivate *bool  `json:"is_private,omitempty"`
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
	r.Get("/api/v0/tickets", a.listTickets)
	r.Post("/api/v0/tickets", a.createTicket)
	r.Get("/api/v0/tickets/{id}", a.getTicket)
	r.Patch("/api/v0/tickets/{id}", a.updateTicket)
	r.Get("/api/v0/tickets/{id}/messages", a.listMessages)
	r.Post("/api/v0/tickets/{id}/messages", a.addMessage)
	r.Get("/api/v0/tickets/{id}/notes", a.listNotes)
	r.Post("/api/v0/tickets/{id}/notes", a.addNote)
}

func (a *API) principal(w http.ResponseWriter, r *http.Request) (*types.Principal, bool) {
	p, ok := identity.PrincipalFromContext(r.Context())
	if !ok {
		httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
	}
	return p, ok
}

func (a *API) fail(w http.ResponseWriter, err error) {
	if httptypes.StatusFor(err, errorStatus) >= http.StatusInternalServerError {
		a.logger.Errorf("tickets request failed: %v", err)
	}
	httptypes.WriteServiceError(w, err, errorStatus)
}

func (a *API) listTickets(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := types.TicketFilter{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			httptypes.WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	tickets, err := a.service.ListTickets(r.Context(), p, filter)
	if err != nil {
		a.fail(w, err)
		return
	}

	if tickets == nil {
		tickets = []*types.Ticket{}
	}

	httptypes.WriteJSON(w, http.StatusOK, tickets)
}

func (a *API) createTicket(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(CreateTicketRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	ticket, err := a.service.CreateTicket(r.Context(), p, req)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, ticket)
}

func (a *API) getTicket(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	ticket, err := a.service.GetTicket(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, ticket)
}

func (a *API) updateTicket(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(updateTicketRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	ticket, err := a.service.UpdateTicket(r.Context(), p, chi.URLParam(r, "id"), types.TicketUpdate{
		Status:     req.Status,
		Priority:   req.Priority,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, ticket)
}

func (a *API) listMessages(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	messages, err := a.service.ListMessages(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}

	if messages == nil {
		messages = []*types.TicketMessage{}
	}

	httptypes.WriteJSON(w, http.StatusOK, messages)
}

func (a *API) addMessage(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(messageRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	message, err := a.service.AddMessage(r.Context(), p, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, message)
}

func (a *API) listNotes(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	notes, err := a.service.ListNotes(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}

	if notes == nil {
		notes = []*types.TicketNote{}
	}

	httptypes.WriteJSON(w, http.StatusOK, notes)
}

func (a *API) addNote(w http.ResponseWriter, r *http.Request) {
	p, ok := a.principal(w, r)
	if !ok {
		return
	}

	req := new(noteRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.fail(w, err)
		return
	}

	// notes are private unless stated otherwise
	private := true
	if req.IsPrivate != nil {
		private = *req.IsPrivate
	}

	note, err := a.service.AddNote(r.Context(), p, chi.URLParam(r, "id"), req.Content, private)
	if err != nil {
		a.fail(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, note)
}
