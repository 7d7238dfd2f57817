// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package ticketview holds the ticket list a user works on and keeps it in
// step with the backend.
package ticketview

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/client"
)

var (
	ErrSuperseded    = errors.New("a newer load replaced this one")
	ErrClosed        = errors.New("view is closed")
	ErrNotSignedIn   = errors.New("you must be logged in to create a ticket")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingBody   = errors.New("description is required")
	ErrForbidden     = errors.New("only agents and company admins can change the status")
	ErrUnknownTicket = errors.New("ticket is not in the list")
)

type State int

const (
	Idle State = iota
	Loading
	Empty
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Ready:
		return "ready"
	case Error:
		return "error"
	}
	return "unknown"
}

// Form is the ticket creation input.
type Form struct {
	Title       string
	Description string
	Priority    types.Priority
	Category    string
	CompanyID   string
}

// DefaultForm is the form shown before any input.
func DefaultForm() Form {
	return Form{Priority: types.PriorityNormal}
}

// Snapshot is a copy of the view's state.
type Snapshot struct {
	State   State
	Filter  types.TicketFilter
	Tickets []*types.Ticket
	Err     error
	Form    Form
	FormErr error
}

// View reconciles the displayed tickets with the backend. Every load is
// tagged and only the most recent tag may update the view; remote calls
// run without holding the lock.
type View struct {
	tickets TicketsInterface
	session SessionInterface

	mu      sync.Mutex
	seq     uint64
	closed  bool
	state   State
	filter  types.TicketFilter
	items   []*types.Ticket
	err     error
	form    Form
	// created holds tickets created while a load was in flight, which
	// that load may not have seen.
	created []*types.Ticket
	formErr error

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Load fetches the tickets matching filter. Results of a load that was
// overtaken by a newer one are dropped with ErrSuperseded. On failure the
// previously loaded tickets stay in place.
func (v *View) Load(ctx context.Context, filter types.TicketFilter) error {
	ctx, span := v.tracer.Start(ctx, "ticketview.View.Load")
	defer span.End()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.seq++
	tag := v.seq
	v.filter = filter
	v.state = Loading
	v.mu.Unlock()

	tickets, err := v.tickets.ListTickets(ctx, filter)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	if tag != v.seq {
		v.logger.Debugf("dropping ticket load %d, %d is current", tag, v.seq)
		return ErrSuperseded
	}

	created := v.created
	v.created = nil

	if err != nil {
		v.err = err
		v.state = Error
		return err
	}

	v.err = nil
	v.items = reconcile(merge(tickets, created), filter)
	if len(v.items) == 0 {
		v.state = Empty
	} else {
		v.state = Ready
	}

	return nil
}

// Retry repeats the last load with the same filter.
func (v *View) Retry(ctx context.Context) error {
	v.mu.Lock()
	filter := v.filter
	v.mu.Unlock()

	return v.Load(ctx, filter)
}

// Create submits a ticket for the signed in user. On success the ticket is
// put first in the list whatever the filter, and the form is reset; on
// failure the list and the submitted input stay as they were and the error
// is kept on the form. A load in flight keeps the new ticket when its
// answer does not have it yet.
func (v *View) Create(ctx context.Context, input Form) (*types.Ticket, error) {
	ctx, span := v.tracer.Start(ctx, "ticketview.View.Create")
	defer span.End()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, ErrClosed
	}
	v.form = input
	v.formErr = nil
	v.mu.Unlock()

	ticket, err := v.create(ctx, input)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrClosed
	}
	if err != nil {
		v.formErr = err
		return nil, err
	}

	v.items = append([]*types.Ticket{ticket}, v.items...)
	if v.state == Loading {
		v.created = append(v.created, ticket)
	} else {
		v.state = Ready
	}
	v.form = DefaultForm()

	return ticket, nil
}

func (v *View) create(ctx context.Context, input Form) (*types.Ticket, error) {
	user := v.session.Snapshot()
	if !user.Authenticated() {
		return nil, ErrNotSignedIn
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrMissingBody
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityNormal
	}
	if !priority.Valid() {
		return nil, types.ErrInvalidPriority
	}

	return v.tickets.CreateTicket(ctx, client.NewTicket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		Status:      types.DefaultStatus,
		Category:    input.Category,
		CompanyID:   input.CompanyID,
		CustomerID:  user.UserID,
	})
}

// ChangeStatus moves a listed ticket to status after checking the move
// locally, then replaces it with the backend's copy.
func (v *View) ChangeStatus(ctx context.Context, id string, status types.Status) (*types.Ticket, error) {
	ctx, span := v.tracer.Start(ctx, "ticketview.View.ChangeStatus")
	defer span.End()

	if !v.session.Snapshot().Role.Staff() {
		return nil, ErrForbidden
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil, ErrClosed
	}
	i := v.indexLocked(id)
	if i < 0 {
		v.mu.Unlock()
		return nil, ErrUnknownTicket
	}
	from := v.items[i].Status
	v.mu.Unlock()

	if err := types.ValidateTransition(from, status); err != nil {
		return nil, err
	}

	ticket, err := v.tickets.UpdateTicket(ctx, id, types.TicketUpdate{Status: &status})
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrClosed
	}
	if i := v.indexLocked(id); i >= 0 {
		v.items[i] = ticket
	}

	return ticket, nil
}

func (v *View) indexLocked(id string) int {
	return slices.IndexFunc(v.items, func(t *types.Ticket) bool { return t.ID == id })
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	return Snapshot{
		State:   v.state,
		Filter:  v.filter,
		Tickets: slices.Clone(v.items),
		Err:     v.err,
		Form:    v.form,
		FormErr: v.formErr,
	}
}

// Close stops the view from applying any further results.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
}

// merge adds the created tickets the backend's answer is missing.
func merge(tickets, created []*types.Ticket) []*types.Ticket {
	for _, c := range created {
		if !slices.ContainsFunc(tickets, func(t *types.Ticket) bool { return t != nil && t.ID == c.ID }) {
			tickets = append(tickets, c)
		}
	}
	return tickets
}

// reconcile applies the filter again to the backend's answer and orders it
// newest first.
func reconcile(tickets []*types.Ticket, filter types.TicketFilter) []*types.Ticket {
	out := make([]*types.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t != nil && filter.Matches(t) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b *types.Ticket) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

func NewView(tickets TicketsInterface, session SessionInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *View {
	v := new(View)

	v.tickets = tickets
	v.session = session
	v.state = Idle
	v.form = DefaultForm()

	v.tracer = tracer
	v.monitor = monitor
	v.logger = logger

	return v
}
