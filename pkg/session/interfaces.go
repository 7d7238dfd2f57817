// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/types"
)

// AuthInterface is the authentication service the store delegates to.
type AuthInterface interface {
	GetSession(ctx context.Context) (*kratos.Session, error)
	SignIn(ctx context.Context, email, password string) (*kratos.Session, error)
	SignUp(ctx context.Context, email, password string, role types.Role) (*kratos.Session, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, password string) error
	OnAuthStateChange(fn kratos.AuthStateListener) func()
}

// RoleSourceInterface resolves the role assignment of the signed in user.
type RoleSourceInterface interface {
	Me(ctx context.Context) (*types.Principal, error)
}
