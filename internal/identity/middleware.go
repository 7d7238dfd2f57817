// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"
	"net/http"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/authentication"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *types.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal resolved for the request, if any.
func PrincipalFromContext(ctx context.Context) (*types.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*types.Principal)
	return p, ok && p != nil
}

// Middleware turns the authenticated user id into a principal: the role from
// the role table and, for staff, the company they belong to.
type Middleware struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Resolve loads the principal of userID. A user without a role assignment
// resolves to a principal with an empty role.
func (m *Middleware) Resolve(ctx context.Context, userID string) (*types.Principal, error) {
	ctx, span := m.tracer.Start(ctx, "identity.Middleware.Resolve")
	defer span.End()

	p := &types.Principal{UserID: userID}

	role, err := m.storage.GetRole(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	p.Role = role

	switch role {
	case types.RoleCompanyAdmin:
		company, err := m.storage.GetCompanyByAdmin(ctx, userID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if company != nil {
			p.CompanyID = company.ID
		}
	case types.RoleAgent:
		agent, err := m.storage.GetAgentByUserID(ctx, userID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if agent != nil {
			p.CompanyID = agent.CompanyID
		}
	}

	return p, nil
}

func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		userID, ok := authentication.GetUserID(ctx)
		if !ok || userID == "" {
			httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
			return
		}

		p, err := m.Resolve(ctx, userID)
		if err != nil {
			m.logger.Errorf("failed to resolve principal for %s: %v", userID, err)
			httptypes.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		if email, ok := authentication.GetEmail(ctx); ok {
			p.Email = email
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
	})
}
