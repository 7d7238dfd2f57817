// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/autocrm/internal/types"
)

type TicketStorageInterface interface {
	ListTickets(ctx context.Context, scope types.TicketScope, filter types.TicketFilter) ([]*types.Ticket, error)
	CreateTicket(ctx context.Context, t *types.Ticket) (*types.Ticket, error)
	GetTicket(ctx context.Context, id string, scope types.TicketScope) (*types.Ticket, error)
	UpdateTicket(ctx context.Context, id string, update types.TicketUpdate) (*types.Ticket, error)
	CountTickets(ctx context.Context, companyID string) (active int, resolved int, err error)
	ListMessages(ctx context.Context, ticketID string) ([]*types.TicketMessage, error)
	AddMessage(ctx context.Context, msg *types.TicketMessage) (*types.TicketMessage, error)
	ListNotes(ctx context.Context, ticketID string) ([]*types.TicketNote, error)
	AddNote(ctx context.Context, note *types.TicketNote) (*types.TicketNote, error)
}

type CompanyStorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompany(ctx context.Context, id string) (*types.Company, error)
	GetCompanyByAdmin(ctx context.Context, adminID string) (*types.Company, error)
	ListVerifiedCompanies(ctx context.Context) ([]*types.Company, error)
	UpdateCompany(ctx context.Context, id string, settings types.CompanySettings) (*types.Company, error)
	SetCompanyLogo(ctx context.Context, id, logo string) error
}

type AgentStorageInterface interface {
	AddAgent(ctx context.Context, a *types.Agent) (*types.Agent, error)
	GetAgentByUserID(ctx context.Context, userID string) (*types.Agent, error)
	ListAgents(ctx context.Context, companyID string) ([]*types.Agent, error)
	CountAgents(ctx context.Context, companyID string) (int, error)
	DeleteAgent(ctx context.Context, companyID, id string) (*types.Agent, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	ListInvites(ctx context.Context, companyID string) ([]*types.Invite, error)
	DeleteInvite(ctx context.Context, id string) error
}

type RoleStorageInterface interface {
	GetRole(ctx context.Context, userID string) (types.Role, error)
	SetRole(ctx context.Context, userID string, role types.Role) error
}

type StorageInterface interface {
	TicketStorageInterface
	CompanyStorageInterface
	AgentStorageInterface
	RoleStorageInterface
}
