// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/autocrm/internal/types"
)

// StorageInterface is the subset of the storage layer needed to resolve a principal.
type StorageInterface interface {
	GetRole(ctx context.Context, userID string) (types.Role, error)
	GetCompanyByAdmin(ctx context.Context, adminID string) (*types.Company, error)
	GetAgentByUserID(ctx context.Context, userID string) (*types.Agent, error)
}
