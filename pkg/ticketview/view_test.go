// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ticketview

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/client"
	"github.com/canonical/autocrm/pkg/session"
)

//go:generate mockgen -build_flags=--mod=mod -package ticketview -destination ./mock_ticketview.go -source=./interfaces.go

const customerID = "3e7b1c9d-2a4f-4b6e-8c0d-1f2a3b4c5d6e"

var (
	base     = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	customer = session.State{UserID: customerID, Role: types.RoleCustomer}
	agent    = session.State{UserID: "agent-1", Role: types.RoleAgent}
)

func ticket(id, title, description string, priority types.Priority, age time.Duration) *types.Ticket {
	return &types.Ticket{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      types.StatusOpen,
		Priority:    priority,
		CustomerID:  customerID,
		CreatedAt:   base.Add(-age),
	}
}

func fixtures() []*types.Ticket {
	return []*types.Ticket{
		ticket("t2", "Printer issue", "paper jam on floor 2", types.PriorityLow, 2*time.Hour),
		ticket("t1", "Login issue", "password reset mail never arrives", types.PriorityUrgent, time.Hour),
		ticket("t3", "Account locked", "I cannot login since Monday", types.PriorityHigh, 3*time.Hour),
	}
}

type mocks struct {
	tickets *MockTicketsInterface
	session *MockSessionInterface
}

func setup(t *testing.T) (*View, *mocks) {
	ctrl := gomock.NewController(t)

	m := &mocks{
		tickets: NewMockTicketsInterface(ctrl),
		session: NewMockSessionInterface(ctrl),
	}

	logger := logging.NewNoopLogger()
	v := NewView(m.tickets, m.session, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm", logger), logger)

	return v, m
}

func ids(tickets []*types.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewViewIsIdle(t *testing.T) {
	v, _ := setup(t)

	s := v.Snapshot()
	if s.State != Idle || len(s.Tickets) != 0 || s.Form.Priority != types.PriorityNormal {
		t.Fatalf("unexpected initial snapshot %+v", s)
	}
}

func TestView_Load(t *testing.T) {
	tests := []struct {
		name          string
		filter        types.TicketFilter
		backend       []*types.Ticket
		expectedIDs   []string
		expectedState State
	}{
		{
			name:          "all filters return everything newest first",
			filter:        types.TicketFilter{Status: types.FilterAll, Priority: types.FilterAll},
			backend:       fixtures(),
			expectedIDs:   []string{"t1", "t2", "t3"},
			expectedState: Ready,
		},
		{
			name:          "search matches title or description",
			filter:        types.TicketFilter{Status: types.FilterAll, Priority: types.FilterAll, Search: "login"},
			backend:       fixtures(),
			expectedIDs:   []string{"t1", "t3"},
			expectedState: Ready,
		},
		{
			name:          "priority filter keeps urgent unchanged",
			filter:        types.TicketFilter{Priority: string(types.PriorityUrgent)},
			backend:       fixtures(),
			expectedIDs:   []string{"t1"},
			expectedState: Ready,
		},
		{
			name:          "no tickets",
			filter:        types.TicketFilter{},
			backend:       []*types.Ticket{},
			expectedIDs:   []string{},
			expectedState: Empty,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, m := setup(t)
			m.tickets.EXPECT().ListTickets(gomock.Any(), test.filter).Return(test.backend, nil)

			if err := v.Load(context.Background(), test.filter); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			s := v.Snapshot()
			if s.State != test.expectedState {
				t.Fatalf("expected state %s, got %s", test.expectedState, s.State)
			}
			if got := ids(s.Tickets); !equalIDs(got, test.expectedIDs) {
				t.Fatalf("expected %v, got %v", test.expectedIDs, got)
			}
			for _, ticket := range s.Tickets {
				if ticket.ID == "t1" && ticket.Priority != types.PriorityUrgent {
					t.Fatalf("priority changed to %q", ticket.Priority)
				}
			}
		})
	}
}

func TestView_LoadFailureKeepsTickets(t *testing.T) {
	v, m := setup(t)
	fetchErr := errors.New("502: bad gateway")
	filter := types.TicketFilter{Status: string(types.StatusOpen)}

	gomock.InOrder(
		m.tickets.EXPECT().ListTickets(gomock.Any(), types.TicketFilter{}).Return(fixtures(), nil),
		m.tickets.EXPECT().ListTickets(gomock.Any(), filter).Return(nil, fetchErr),
		m.tickets.EXPECT().ListTickets(gomock.Any(), filter).Return(fixtures()[:1], nil),
	)

	if err := v.Load(context.Background(), types.TicketFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Load(context.Background(), filter); !errors.Is(err, fetchErr) {
		t.Fatalf("expected %v, got %v", fetchErr, err)
	}

	s := v.Snapshot()
	if s.State != Error || !errors.Is(s.Err, fetchErr) || len(s.Tickets) != 3 {
		t.Fatalf("expected error state with previous tickets, got %+v", s)
	}

	if err := v.Retry(context.Background()); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}

	s = v.Snapshot()
	if s.State != Ready || s.Err != nil || !equalIDs(ids(s.Tickets), []string{"t2"}) {
		t.Fatalf("unexpected snapshot after retry %+v", s)
	}
}

func TestView_OverlappingLoadsLatestWins(t *testing.T) {
	v, m := setup(t)

	slow := types.TicketFilter{Priority: string(types.PriorityLow)}
	fast := types.TicketFilter{Priority: string(types.PriorityUrgent)}

	started := make(chan struct{})
	release := make(chan struct{})

	m.tickets.EXPECT().ListTickets(gomock.Any(), slow).DoAndReturn(
		func(context.Context, types.TicketFilter) ([]*types.Ticket, error) {
			close(started)
			<-release
			return fixtures(), nil
		},
	)
	m.tickets.EXPECT().ListTickets(gomock.Any(), fast).Return(fixtures(), nil)

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background(), slow) }()

	<-started
	if err := v.Load(context.Background(), fast); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected the first load to be superseded, got %v", err)
	}

	s := v.Snapshot()
	if s.Filter != fast || !equalIDs(ids(s.Tickets), []string{"t1"}) {
		t.Fatalf("expected the urgent result, got %v for %+v", ids(s.Tickets), s.Filter)
	}
}

func TestView_CloseDropsLateResults(t *testing.T) {
	v, m := setup(t)

	started := make(chan struct{})
	release := make(chan struct{})

	m.tickets.EXPECT().ListTickets(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, types.TicketFilter) ([]*types.Ticket, error) {
			close(started)
			<-release
			return fixtures(), nil
		},
	)

	done := make(chan error, 1)
	go func() { done <- v.Load(context.Background(), types.TicketFilter{}) }()

	<-started
	v.Close()
	close(release)

	if err := <-done; !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if s := v.Snapshot(); len(s.Tickets) != 0 {
		t.Fatalf("late result applied after close: %v", ids(s.Tickets))
	}
	if err := v.Load(context.Background(), types.TicketFilter{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestView_Create(t *testing.T) {
	input := Form{Title: "VPN down", Description: "cannot reach the intranet", Priority: types.PriorityUrgent}
	createErr := errors.New("403: forbidden")

	tests := []struct {
		name        string
		input       Form
		setupMocks  func(*mocks)
		expectedErr error
		expectedIDs []string
	}{
		{
			name:  "new ticket is put first",
			input: input,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(customer)
				m.tickets.EXPECT().CreateTicket(gomock.Any(), client.NewTicket{
					Title:       "VPN down",
					Description: "cannot reach the intranet",
					Priority:    types.PriorityUrgent,
					Status:      types.StatusOpen,
					CustomerID:  customerID,
				}).Return(ticket("t4", "VPN down", "cannot reach the intranet", types.PriorityUrgent, 0), nil)
			},
			expectedIDs: []string{"t4", "t1", "t2", "t3"},
		},
		{
			name:  "backend failure leaves everything in place",
			input: input,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(customer)
				m.tickets.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(nil, createErr)
			},
			expectedErr: createErr,
			expectedIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:  "signed out user",
			input: input,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(session.State{})
			},
			expectedErr: ErrNotSignedIn,
			expectedIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:  "blank title",
			input: Form{Title: "  ", Description: "x", Priority: types.PriorityLow},
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(customer)
			},
			expectedErr: ErrMissingTitle,
			expectedIDs: []string{"t1", "t2", "t3"},
		},
		{
			name:  "unknown priority",
			input: Form{Title: "a", Description: "b", Priority: "blocker"},
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(customer)
			},
			expectedErr: types.ErrInvalidPriority,
			expectedIDs: []string{"t1", "t2", "t3"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, m := setup(t)
			m.tickets.EXPECT().ListTickets(gomock.Any(), gomock.Any()).Return(fixtures(), nil)
			test.setupMocks(m)

			if err := v.Load(context.Background(), types.TicketFilter{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			created, err := v.Create(context.Background(), test.input)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}

			s := v.Snapshot()
			if got := ids(s.Tickets); !equalIDs(got, test.expectedIDs) {
				t.Fatalf("expected %v, got %v", test.expectedIDs, got)
			}

			if test.expectedErr != nil {
				if s.Form != test.input || !errors.Is(s.FormErr, test.expectedErr) {
					t.Fatalf("expected the form to keep the input and the error, got %+v", s)
				}
				return
			}

			if created.Priority != types.PriorityUrgent || created.Status != types.StatusOpen {
				t.Fatalf("unexpected ticket %+v", created)
			}
			if s.Form != DefaultForm() || s.FormErr != nil {
				t.Fatalf("expected the form to reset, got %+v", s.Form)
			}
		})
	}
}

func TestView_CreateDefaultsPriority(t *testing.T) {
	v, m := setup(t)

	m.session.EXPECT().Snapshot().Return(customer)
	m.tickets.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in client.NewTicket) (*types.Ticket, error) {
			if in.Priority != types.PriorityNormal || in.Status != types.StatusOpen {
				t.Errorf("unexpected request %+v", in)
			}
			return ticket("t5", in.Title, in.Description, in.Priority, 0), nil
		},
	)

	if _, err := v.Create(context.Background(), Form{Title: "a", Description: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := v.Snapshot(); s.State != Ready || len(s.Tickets) != 1 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestView_CreateDuringLoad(t *testing.T) {
	tests := []struct {
		name        string
		answer      []*types.Ticket
		expectedIDs []string
	}{
		{
			name:        "load started before the insert",
			answer:      fixtures(),
			expectedIDs: []string{"t4", "t1", "t2", "t3"},
		},
		{
			name:        "load already has the ticket",
			answer:      append(fixtures(), ticket("t4", "VPN down", "cannot reach the intranet", types.PriorityUrgent, 0)),
			expectedIDs: []string{"t4", "t1", "t2", "t3"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, m := setup(t)

			started := make(chan struct{})
			release := make(chan struct{})

			m.tickets.EXPECT().ListTickets(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, types.TicketFilter) ([]*types.Ticket, error) {
					close(started)
					<-release
					return test.answer, nil
				},
			)
			m.session.EXPECT().Snapshot().Return(customer)
			m.tickets.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(
				ticket("t4", "VPN down", "cannot reach the intranet", types.PriorityUrgent, 0), nil,
			)

			done := make(chan error, 1)
			go func() { done <- v.Load(context.Background(), types.TicketFilter{}) }()

			<-started
			if _, err := v.Create(context.Background(), Form{Title: "VPN down", Description: "cannot reach the intranet"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := v.Snapshot(); s.State != Loading {
				t.Fatalf("expected the view to keep loading, got %s", s.State)
			}

			close(release)
			if err := <-done; err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			s := v.Snapshot()
			if s.State != Ready {
				t.Fatalf("expected ready, got %s", s.State)
			}
			if got := ids(s.Tickets); !equalIDs(got, test.expectedIDs) {
				t.Fatalf("expected %v, got %v", test.expectedIDs, got)
			}
		})
	}
}

func TestView_CreateIgnoresFilterUntilNextLoad(t *testing.T) {
	v, m := setup(t)

	urgent := types.TicketFilter{Priority: string(types.PriorityUrgent)}
	low := ticket("t4", "Mouse", "scroll wheel sticks", types.PriorityLow, 0)

	gomock.InOrder(
		m.tickets.EXPECT().ListTickets(gomock.Any(), urgent).Return(fixtures(), nil),
		m.tickets.EXPECT().ListTickets(gomock.Any(), urgent).Return(append(fixtures(), low), nil),
	)
	m.session.EXPECT().Snapshot().Return(customer)
	m.tickets.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(low, nil)

	if err := v.Load(context.Background(), urgent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := v.Create(context.Background(), Form{Title: "Mouse", Description: "scroll wheel sticks", Priority: types.PriorityLow}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(v.Snapshot().Tickets); !equalIDs(got, []string{"t4", "t1"}) {
		t.Fatalf("expected the new ticket first regardless of the filter, got %v", got)
	}

	if err := v.Retry(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(v.Snapshot().Tickets); !equalIDs(got, []string{"t1"}) {
		t.Fatalf("expected the next load to apply the filter, got %v", got)
	}
}

func TestView_ChangeStatus(t *testing.T) {
	updateErr := errors.New("409: conflict")

	tests := []struct {
		name           string
		id             string
		status         types.Status
		setupMocks     func(*mocks)
		expectedErr    error
		expectedStatus types.Status
	}{
		{
			name:   "agent starts work",
			id:     "t1",
			status: types.StatusInProgress,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(agent)
				updated := ticket("t1", "Login issue", "password reset mail never arrives", types.PriorityUrgent, time.Hour)
				updated.Status = types.StatusInProgress
				status := types.StatusInProgress
				m.tickets.EXPECT().UpdateTicket(gomock.Any(), "t1", types.TicketUpdate{Status: &status}).Return(updated, nil)
			},
			expectedStatus: types.StatusInProgress,
		},
		{
			name:   "illegal move is rejected locally",
			id:     "t1",
			status: types.StatusClosed,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(agent)
			},
			expectedErr:    types.ErrInvalidTransition,
			expectedStatus: types.StatusOpen,
		},
		{
			name:   "customers cannot change status",
			id:     "t1",
			status: types.StatusPending,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(customer)
			},
			expectedErr:    ErrForbidden,
			expectedStatus: types.StatusOpen,
		},
		{
			name:   "unknown ticket",
			id:     "t9",
			status: types.StatusPending,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(agent)
			},
			expectedErr:    ErrUnknownTicket,
			expectedStatus: types.StatusOpen,
		},
		{
			name:   "backend failure keeps the ticket",
			id:     "t1",
			status: types.StatusPending,
			setupMocks: func(m *mocks) {
				m.session.EXPECT().Snapshot().Return(agent)
				m.tickets.EXPECT().UpdateTicket(gomock.Any(), "t1", gomock.Any()).Return(nil, updateErr)
			},
			expectedErr:    updateErr,
			expectedStatus: types.StatusOpen,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, m := setup(t)
			m.tickets.EXPECT().ListTickets(gomock.Any(), gomock.Any()).Return(fixtures(), nil)
			test.setupMocks(m)

			if err := v.Load(context.Background(), types.TicketFilter{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err := v.ChangeStatus(context.Background(), test.id, test.status)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}

			s := v.Snapshot()
			if s.Tickets[0].ID != "t1" || s.Tickets[0].Status != test.expectedStatus {
				t.Fatalf("expected t1 first with status %s, got %+v", test.expectedStatus, s.Tickets[0])
			}
		})
	}
}
