// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

var ErrMissingIdentity = errors.New("identity ID is empty")

type Service struct {
	storage  StorageInterface
	identity IdentityInterface
	tracer   tracing.TracingInterface
	monitor  monitoring.MonitorInterface
	logger   logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	identity IdentityInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		identity: identity,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// SelfServiceRole narrows the role requested at sign up to the ones a user
// may pick for themselves. Agents only join through invites.
func SelfServiceRole(requested string) types.Role {
	switch r := types.Role(requested); r {
	case types.RoleCustomer, types.RoleCompanyAdmin:
		return r
	default:
		return types.RoleCustomer
	}
}

// HandleRegistration assigns the initial role of a new identity. Replayed
// hooks keep whatever role is already assigned.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email, requestedRole string) (types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s with email %s", identityID, email)

	if identityID == "" {
		return types.RoleNone, ErrMissingIdentity
	}

	existing, err := s.storage.GetRole(ctx, identityID)
	if err == nil {
		s.logger.Debugf("identity %s already has role %s", identityID, existing)
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return types.RoleNone, fmt.Errorf("failed to look up role: %w", err)
	}

	role := SelfServiceRole(requestedRole)

	if err := s.storage.SetRole(ctx, identityID, role); err != nil {
		return types.RoleNone, fmt.Errorf("failed to assign role: %w", err)
	}

	if err := s.identity.SetRoleMetadata(ctx, identityID, role); err != nil {
		s.logger.Warnf("failed to mirror role of %s into identity metadata: %v", identityID, err)
	}

	s.logger.Infof("Assigned role %s to identity %s", role, identityID)
	return role, nil
}
