// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tickets

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/db"
	"github.com/canonical/autocrm/internal/events"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package tickets -destination ./mock_tickets.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tickets -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tickets -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tickets -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	ticketID   = "0b7e1f0c-7d0e-4f55-9a53-3c8f2b1e6a01"
	companyID  = "5d2c9a4e-1b3f-4c7a-8e6d-9f0a1b2c3d4e"
	customerID = "c1a2b3c4-d5e6-4f70-8192-a3b4c5d6e7f8"
	agentID    = "a9b8c7d6-e5f4-4a3b-2c1d-0e9f8a7b6c5d"
)

var (
	customer = &types.Principal{UserID: customerID, Role: types.RoleCustomer}
	agent    = &types.Principal{UserID: agentID, Role: types.RoleAgent, CompanyID: companyID}
)

type mocks struct {
	storage   *MockStorageInterface
	authz     *MockAuthzInterface
	publisher *MockPublisherInterface
	tracer    *MockTracingInterface
	logger    *MockLoggerInterface
	security  *MockSecurityLoggerInterface
}

func setup(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)

	m := &mocks{
		storage:   NewMockStorageInterface(ctrl),
		authz:     NewMockAuthzInterface(ctrl),
		publisher: NewMockPublisherInterface(ctrl),
		tracer:    NewMockTracingInterface(ctrl),
		logger:    NewMockLoggerInterface(ctrl),
		security:  NewMockSecurityLoggerInterface(ctrl),
	}
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()
	m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	s := NewService(m.storage, m.authz, m.publisher, m.tracer, NewMockMonitorInterface(ctrl), m.logger)
	return s, m
}

func (m *mocks) expectSpan(name string) {
	ctx := context.Background()
	m.tracer.EXPECT().Start(gomock.Any(), name).Return(ctx, trace.SpanFromContext(ctx))
}

func ticket(status types.Status) *types.Ticket {
	cid := companyID
	return &types.Ticket{
		ID:           ticketID,
		TicketNumber: "TKT-2026-000042",
		Title:        "Login issue",
		Status:       status,
		Priority:     types.PriorityHigh,
		CustomerID:   customerID,
		CompanyID:    &cid,
	}
}

func TestScope(t *testing.T) {
	tests := []struct {
		name        string
		principal   *types.Principal
		expected    types.TicketScope
		expectedErr error
	}{
		{name: "customer sees own tickets", principal: customer, expected: types.TicketScope{CustomerID: customerID}},
		{name: "unassigned role sees own tickets", principal: &types.Principal{UserID: "u"}, expected: types.TicketScope{CustomerID: "u"}},
		{name: "agent sees company tickets", principal: agent, expected: types.TicketScope{CompanyID: companyID}},
		{name: "admin sees company tickets", principal: &types.Principal{UserID: "x", Role: types.RoleCompanyAdmin, CompanyID: companyID}, expected: types.TicketScope{CompanyID: companyID}},
		{name: "staff without company", principal: &types.Principal{UserID: "x", Role: types.RoleAgent}, expectedErr: ErrNoCompanyMembership},
		{name: "unknown role", principal: &types.Principal{UserID: "x", Role: "superuser"}, expectedErr: ErrForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := scope(test.principal)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if got != test.expected {
				t.Fatalf("expected %+v, got %+v", test.expected, got)
			}
		})
	}
}

func TestService_ListTickets(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name        string
		principal   *types.Principal
		filter      types.TicketFilter
		setupMocks  func(*mocks)
		expectedLen int
		expectedErr error
	}{
		{
			name:      "customer listing with trimmed search",
			principal: customer,
			filter:    types.TicketFilter{Status: "all", Priority: "urgent", Search: "  login "},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().ListTickets(gomock.Any(), types.TicketScope{CustomerID: customerID}, types.TicketFilter{Status: "all", Priority: "urgent", Search: "login"}).
					Return([]*types.Ticket{ticket(types.StatusOpen)}, nil)
			},
			expectedLen: 1,
		},
		{
			name:      "agent listing",
			principal: agent,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().ListTickets(gomock.Any(), types.TicketScope{CompanyID: companyID}, types.TicketFilter{}).
					Return([]*types.Ticket{ticket(types.StatusOpen), ticket(types.StatusPending)}, nil)
			},
			expectedLen: 2,
		},
		{
			name:        "agent without company",
			principal:   &types.Principal{UserID: agentID, Role: types.RoleAgent},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrNoCompanyMembership,
		},
		{
			name:      "storage error",
			principal: customer,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().ListTickets(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("tickets.Service.ListTickets")
			test.setupMocks(m)

			tickets, err := s.ListTickets(context.Background(), test.principal, test.filter)

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if len(tickets) != test.expectedLen {
				t.Fatalf("expected %d tickets, got %d", test.expectedLen, len(tickets))
			}
		})
	}
}

func TestService_CreateTicket(t *testing.T) {
	linkErr := errors.New("openfga unavailable")

	tests := []struct {
		name        string
		principal   *types.Principal
		req         *CreateTicketRequest
		setupMocks  func(*mocks)
		expectedErr error
	}{
		{
			name:      "without company",
			principal: customer,
			req:       &CreateTicketRequest{Title: " Login issue ", Description: "cannot login", Priority: types.PriorityUrgent},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, t *types.Ticket) (*types.Ticket, error) {
						if t.Status != types.StatusOpen || t.CustomerID != customerID || t.Title != "Login issue" || t.Priority != types.PriorityUrgent {
							return nil, errors.New("unexpected ticket")
						}
						created := *t
						created.ID = ticketID
						return &created, nil
					},
				)
				m.authz.EXPECT().LinkTicket(gomock.Any(), ticketID, customerID, "").Return(nil)
				m.publisher.EXPECT().PublishTicket(gomock.Any(), gomock.Any()).Do(
					func(_ context.Context, e events.TicketEvent) {
						if e.Type != events.TicketCreated || e.ActorID != customerID {
							t.Errorf("unexpected event %+v", e)
						}
					},
				)
			},
		},
		{
			name:      "filed with a verified company",
			principal: customer,
			req:       &CreateTicketRequest{Title: "Printer issue", Description: "jammed", Priority: types.PriorityLow, CompanyID: companyID},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetCompany(gomock.Any(), companyID).Return(&types.Company{ID: companyID, IsVerified: true}, nil)
				m.storage.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().LinkTicket(gomock.Any(), ticketID, customerID, companyID).Return(nil)
				m.publisher.EXPECT().PublishTicket(gomock.Any(), gomock.Any())
			},
		},
		{
			name:      "unverified company",
			principal: customer,
			req:       &CreateTicketRequest{Title: "a", Description: "b", Priority: types.PriorityLow, CompanyID: companyID},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetCompany(gomock.Any(), companyID).Return(&types.Company{ID: companyID}, nil)
			},
			expectedErr: ErrCompanyNotVerified,
		},
		{
			name:        "agents do not file tickets",
			principal:   agent,
			req:         &CreateTicketRequest{Title: "a", Description: "b", Priority: types.PriorityLow},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrForbidden,
		},
		{
			name:        "filing for someone else",
			principal:   customer,
			req:         &CreateTicketRequest{Title: "a", Description: "b", Priority: types.PriorityLow, CustomerID: agentID},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrForbidden,
		},
		{
			name:      "permission write failure",
			principal: customer,
			req:       &CreateTicketRequest{Title: "a", Description: "b", Priority: types.PriorityLow},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(&types.Ticket{ID: ticketID}, nil)
				m.authz.EXPECT().LinkTicket(gomock.Any(), ticketID, customerID, "").Return(linkErr)
			},
			expectedErr: linkErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("tickets.Service.CreateTicket")
			test.setupMocks(m)

			created, err := s.CreateTicket(context.Background(), test.principal, test.req)

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expectedErr == nil && created.ID != ticketID {
				t.Fatalf("unexpected ticket %+v", created)
			}
		})
	}
}

func TestService_CreateTicketPublishesAfterCommit(t *testing.T) {
	rollback := errors.New("handler failed later")

	tests := []struct {
		name      string
		after     error
		published bool
	}{
		{name: "committed", published: true},
		{name: "rolled back", after: rollback},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.tracer.EXPECT().Start(gomock.Any(), "tickets.Service.CreateTicket").DoAndReturn(
				func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				},
			)
			m.storage.EXPECT().CreateTicket(gomock.Any(), gomock.Any()).Return(&types.Ticket{ID: ticketID}, nil)
			m.authz.EXPECT().LinkTicket(gomock.Any(), ticketID, customerID, "").Return(nil)

			published := false
			if test.published {
				m.publisher.EXPECT().PublishTicket(gomock.Any(), gomock.Any()).Do(
					func(context.Context, events.TicketEvent) { published = true },
				)
			}

			err := new(db.DBClient).WithTx(context.Background(), func(ctx context.Context) error {
				if _, err := s.CreateTicket(ctx, customer, &CreateTicketRequest{Title: "a", Description: "b", Priority: types.PriorityLow}); err != nil {
					return err
				}
				if published {
					t.Error("event published before the transaction committed")
				}
				return test.after
			})

			if !errors.Is(err, test.after) {
				t.Fatalf("expected error %v, got %v", test.after, err)
			}
			if published != test.published {
				t.Fatalf("expected published %v, got %v", test.published, published)
			}
		})
	}
}

func TestService_GetTicket(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		setupMocks  func(*mocks)
		expectedErr error
	}{
		{
			name:        "malformed id",
			id:          "not-a-uuid",
			setupMocks:  func(m *mocks) {},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "out of scope",
			id:   ticketID,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, types.TicketScope{CustomerID: customerID}).Return(nil, storage.ErrNotFound)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "denied by relationships",
			id:   ticketID,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanViewTicket(gomock.Any(), ticketID, customerID).Return(false, nil)
				m.security.EXPECT().AuthzFailure(customerID, "ticket:"+ticketID)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "visible",
			id:   ticketID,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanViewTicket(gomock.Any(), ticketID, customerID).Return(true, nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("tickets.Service.GetTicket")
			test.setupMocks(m)

			_, err := s.GetTicket(context.Background(), customer, test.id)

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
		})
	}
}

func TestService_UpdateTicket(t *testing.T) {
	inProgress := types.StatusInProgress
	closed := types.StatusClosed
	open := types.StatusOpen
	bogus := types.Priority("whenever")
	critical := types.PriorityCritical

	tests := []struct {
		name           string
		principal      *types.Principal
		update         types.TicketUpdate
		setupMocks     func(*mocks)
		expectedStatus types.Status
		expectedErr    error
	}{
		{
			name:        "customers cannot change tickets",
			principal:   customer,
			update:      types.TicketUpdate{Status: &inProgress},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrForbidden,
		},
		{
			name:      "legal transition",
			principal: agent,
			update:    types.TicketUpdate{Status: &inProgress},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, types.TicketScope{CompanyID: companyID}).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(true, nil)
				m.storage.EXPECT().UpdateTicket(gomock.Any(), ticketID, types.TicketUpdate{Status: &inProgress}).Return(ticket(types.StatusInProgress), nil)
				m.security.EXPECT().AdminAction(agentID, "ticket.status.in_progress", "ticket:"+ticketID)
				m.publisher.EXPECT().PublishTicket(gomock.Any(), gomock.Any())
			},
			expectedStatus: types.StatusInProgress,
		},
		{
			name:      "illegal transition",
			principal: agent,
			update:    types.TicketUpdate{Status: &closed},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(true, nil)
			},
			expectedErr: types.ErrInvalidTransition,
		},
		{
			name:      "same status only is a no-op",
			principal: agent,
			update:    types.TicketUpdate{Status: &open},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(true, nil)
			},
			expectedStatus: types.StatusOpen,
		},
		{
			name:      "unknown priority",
			principal: agent,
			update:    types.TicketUpdate{Priority: &bogus},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(true, nil)
			},
			expectedErr: types.ErrInvalidPriority,
		},
		{
			name:      "priority change keeps status",
			principal: agent,
			update:    types.TicketUpdate{Priority: &critical},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusPending), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(true, nil)
				m.storage.EXPECT().UpdateTicket(gomock.Any(), ticketID, types.TicketUpdate{Priority: &critical}).Return(ticket(types.StatusPending), nil)
				m.publisher.EXPECT().PublishTicket(gomock.Any(), gomock.Any())
			},
			expectedStatus: types.StatusPending,
		},
		{
			name:      "relationship check denies",
			principal: agent,
			update:    types.TicketUpdate{Status: &inProgress},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.authz.EXPECT().CanEditTicket(gomock.Any(), ticketID, agentID).Return(false, nil)
				m.security.EXPECT().AuthzFailure(agentID, "ticket:"+ticketID)
			},
			expectedErr: ErrForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("tickets.Service.UpdateTicket")
			test.setupMocks(m)

			updated, err := s.UpdateTicket(context.Background(), test.principal, ticketID, test.update)

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expectedErr == nil && updated.Status != test.expectedStatus {
				t.Fatalf("expected status %s, got %s", test.expectedStatus, updated.Status)
			}
		})
	}
}

func TestService_AddMessage(t *testing.T) {
	tests := []struct {
		name        string
		principal   *types.Principal
		content     string
		setupMocks  func(*mocks)
		expectAgent bool
		expectedErr error
	}{
		{
			name:      "customer reply",
			principal: customer,
			content:   "still broken",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.storage.EXPECT().AddMessage(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msg *types.TicketMessage) (*types.TicketMessage, error) { return msg, nil },
				)
			},
		},
		{
			name:      "agent reply",
			principal: agent,
			content:   "looking into it",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, gomock.Any()).Return(ticket(types.StatusOpen), nil)
				m.storage.EXPECT().AddMessage(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msg *types.TicketMessage) (*types.TicketMessage, error) { return msg, nil },
				)
			},
			expectAgent: true,
		},
		{
			name:        "blank content",
			principal:   customer,
			content:     "   ",
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrEmptyContent,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("tickets.Service.AddMessage")
			test.setupMocks(m)

			msg, err := s.AddMessage(context.Background(), test.principal, ticketID, test.content)

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if err == nil && (msg.IsAgent != test.expectAgent || msg.SenderID != test.principal.UserID) {
				t.Fatalf("unexpected message %+v", msg)
			}
		})
	}
}

func TestService_NotesAreStaffOnly(t *testing.T) {
	s, m := setup(t)

	m.expectSpan("tickets.Service.ListNotes")
	if _, err := s.ListNotes(context.Background(), customer, ticketID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	m.expectSpan("tickets.Service.AddNote")
	if _, err := s.AddNote(context.Background(), customer, ticketID, "internal", true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	m.expectSpan("tickets.Service.AddNote")
	m.storage.EXPECT().GetTicket(gomock.Any(), ticketID, types.TicketScope{CompanyID: companyID}).Return(ticket(types.StatusOpen), nil)
	m.storage.EXPECT().AddNote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *types.TicketNote) (*types.TicketNote, error) { return n, nil },
	)

	note, err := s.AddNote(context.Background(), agent, ticketID, "customer is on the old plan", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !note.IsPrivate || note.AuthorID != agentID {
		t.Fatalf("unexpected note %+v", note)
	}
}
