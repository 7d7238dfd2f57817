// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agents

import (
	"context"

	"github.com/canonical/autocrm/internal/types"
)

type ServiceInterface interface {
	Invite(ctx context.Context, p *types.Principal, email string) (*types.Invite, error)
	ListInvites(ctx context.Context, p *types.Principal) ([]*types.Invite, error)
	ListAgents(ctx context.Context, p *types.Principal) ([]*types.Agent, error)
	Accept(ctx context.Context, p *types.Principal, token string) (*types.Agent, error)
	RemoveAgent(ctx context.Context, p *types.Principal, id string) error
}

// StorageInterface defines the storage operations required by the agents package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	AddAgent(ctx context.Context, a *types.Agent) (*types.Agent, error)
	ListAgents(ctx context.Context, companyID string) ([]*types.Agent, error)
	DeleteAgent(ctx context.Context, companyID, id string) (*types.Agent, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	ListInvites(ctx context.Context, companyID string) ([]*types.Invite, error)
	DeleteInvite(ctx context.Context, id string) error
	SetRole(ctx context.Context, userID string, role types.Role) error
}

// TxInterface runs fn in a transaction of its own, independent of the one
// carried by ctx.
type TxInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type AuthzInterface interface {
	AssignCompanyAgent(ctx context.Context, companyID, userID string) error
	RemoveCompanyAgent(ctx context.Context, companyID, userID string) error
}

type IdentityInterface interface {
	GetIdentityEmail(ctx context.Context, id string) (string, error)
	SetRoleMetadata(ctx context.Context, id string, role types.Role) error
}
