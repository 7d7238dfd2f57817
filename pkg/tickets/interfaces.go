// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tickets

import (
	"context"

	"github.com/canonical/autocrm/internal/events"
	"github.com/canonical/autocrm/internal/types"
)

type ServiceInterface interface {
	ListTickets(ctx context.Context, p *types.Principal, filter types.TicketFilter) ([]*types.Ticket, error)
	CreateTicket(ctx context.Context, p *types.Principal, req *CreateTicketRequest) (*types.Ticket, error)
	GetTicket(ctx context.Context, p *types.Principal, id string) (*types.Ticket, error)
	UpdateTicket(ctx context.Context, p *types.Principal, id string, update types.TicketUpdate) (*types.Ticket, error)
	ListMessages(ctx context.Context, p *types.Principal, ticketID string) ([]*types.TicketMessage, error)
	AddMessage(ctx context.Context, p *types.Principal, ticketID, content string) (*types.TicketMessage, error)
	ListNotes(ctx context.Context, p *types.Principal, ticketID string) ([]*types.TicketNote, error)
	AddNote(ctx context.Context, p *types.Principal, ticketID, content string, private bool) (*types.TicketNote, error)
}

// StorageInterface defines the storage operations required by the tickets package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	ListTickets(ctx context.Context, scope types.TicketScope, filter types.TicketFilter) ([]*types.Ticket, error)
	CreateTicket(ctx context.Context, t *types.Ticket) (*types.Ticket, error)
	GetTicket(ctx context.Context, id string, scope types.TicketScope) (*types.Ticket, error)
	UpdateTicket(ctx context.Context, id string, update types.TicketUpdate) (*types.Ticket, error)
	ListMessages(ctx context.Context, ticketID string) ([]*types.TicketMessage, error)
	AddMessage(ctx context.Context, msg *types.TicketMessage) (*types.TicketMessage, error)
	ListNotes(ctx context.Context, ticketID string) ([]*types.TicketNote, error)
	AddNote(ctx context.Context, note *types.TicketNote) (*types.TicketNote, error)
	GetCompany(ctx context.Context, id string) (*types.Company, error)
}

type AuthzInterface interface {
	LinkTicket(ctx context.Context, ticketID, customerID, companyID string) error
	CanViewTicket(ctx context.Context, ticketID, userID string) (bool, error)
	CanEditTicket(ctx context.Context, ticketID, userID string) (bool, error)
}

type PublisherInterface interface {
	PublishTicket(ctx context.Context, event events.TicketEvent)
}
