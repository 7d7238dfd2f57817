// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/autocrm/internal/kratos"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw bearer token and validates authorization claims
	// Returns the caller's claims if the token is valid and authorized, otherwise an error
	VerifyToken(ctx context.Context, rawToken string) (*Claims, error)
}

// SessionResolverInterface resolves Kratos session tokens, implemented by kratos.FrontendClient.
type SessionResolverInterface interface {
	WhoAmI(ctx context.Context, token string) (*kratos.Session, error)
}
