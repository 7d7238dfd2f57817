// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/autocrm/internal/types"
)

// StorageInterface defines the storage operations required by the webhooks package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	GetRole(ctx context.Context, userID string) (types.Role, error)
	SetRole(ctx context.Context, userID string, role types.Role) error
}

// IdentityInterface mirrors the assigned role into the identity metadata.
type IdentityInterface interface {
	SetRoleMetadata(ctx context.Context, id string, role types.Role) error
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email, requestedRole string) (types.Role, error)
}
