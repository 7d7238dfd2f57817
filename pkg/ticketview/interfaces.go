// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ticketview

import (
	"context"

	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/client"
	"github.com/canonical/autocrm/pkg/session"
)

type TicketsInterface interface {
	ListTickets(ctx context.Context, filter types.TicketFilter) ([]*types.Ticket, error)
	CreateTicket(ctx context.Context, in client.NewTicket) (*types.Ticket, error)
	UpdateTicket(ctx context.Context, id string, update types.TicketUpdate) (*types.Ticket, error)
}

type SessionInterface interface {
	Snapshot() session.State
}
