// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

var (
	ErrForbidden      = errors.New("forbidden")
	ErrNoCompany      = errors.New("no company registered")
	ErrInviteNotFound = errors.New("invite not found")
	ErrInviteExpired  = errors.New("invite expired")
	ErrEmailMismatch  = errors.New("invite was issued to a different email")
	ErrAlreadyAgent   = errors.New("user already belongs to a company")
)

type Service struct {
	storage  StorageInterface
	tx       TxInterface
	authz    AuthzInterface
	identity IdentityInterface

	inviteLifetime time.Duration
	now            func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) admin(p *types.Principal) (string, error) {
	if p.Role != types.RoleCompanyAdmin {
		return "", fmt.Errorf("company administrators only: %w", ErrForbidden)
	}
	if p.CompanyID == "" {
		return "", ErrNoCompany
	}
	return p.CompanyID, nil
}

func (s *Service) Invite(ctx context.Context, p *types.Principal, email string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "agents.Service.Invite")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return nil, err
	}

	invite, err := s.storage.CreateInvite(ctx, &types.Invite{
		Token:     uuid.NewString(),
		CompanyID: companyID,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      types.RoleAgent,
		CreatedBy: p.UserID,
		ExpiresAt: s.now().Add(s.inviteLifetime),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(p.UserID, "agent.invite", "company:"+companyID)

	return invite, nil
}

func (s *Service) ListInvites(ctx context.Context, p *types.Principal) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "agents.Service.ListInvites")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return nil, err
	}

	return s.storage.ListInvites(ctx, companyID)
}

func (s *Service) ListAgents(ctx context.Context, p *types.Principal) ([]*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "agents.Service.ListAgents")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return nil, err
	}

	return s.storage.ListAgents(ctx, companyID)
}

// callerEmail prefers the address carried by the authenticated session and
// asks Kratos otherwise.
func (s *Service) callerEmail(ctx context.Context, p *types.Principal) (string, error) {
	if p.Email != "" {
		return p.Email, nil
	}
	return s.identity.GetIdentityEmail(ctx, p.UserID)
}

// Accept consumes an invite, turning the caller into an agent of the inviting
// company. Database writes share the request transaction, so a failure in
// any step leaves no partial membership behind.
func (s *Service) Accept(ctx context.Context, p *types.Principal, token string) (*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "agents.Service.Accept")
	defer span.End()

	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInviteNotFound
	}

	if p.Role == types.RoleCompanyAdmin || p.Role == types.RoleAgent {
		return nil, ErrAlreadyAgent
	}

	invite, err := s.storage.GetInviteByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}

	if invite.Expired(s.now()) {
		// the request transaction rolls back on error, remove it separately
		if err := s.tx.WithTx(ctx, func(ctx context.Context) error {
			return s.storage.DeleteInvite(ctx, invite.ID)
		}); err != nil {
			s.logger.Errorf("failed to delete expired invite %s: %v", invite.ID, err)
		}
		return nil, ErrInviteExpired
	}

	email, err := s.callerEmail(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller email: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(email), invite.Email) {
		s.logger.Security().AuthzFailure(p.UserID, "invite:"+invite.ID)
		return nil, ErrEmailMismatch
	}

	agent, err := s.storage.AddAgent(ctx, &types.Agent{
		UserID:    p.UserID,
		CompanyID: invite.CompanyID,
		Email:     invite.Email,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, ErrAlreadyAgent
	}
	if err != nil {
		return nil, err
	}

	if err := s.storage.SetRole(ctx, p.UserID, invite.Role); err != nil {
		return nil, err
	}

	if err := s.storage.DeleteInvite(ctx, invite.ID); err != nil {
		return nil, err
	}

	if err := s.authz.AssignCompanyAgent(ctx, invite.CompanyID, p.UserID); err != nil {
		return nil, fmt.Errorf("failed to assign company permissions: %w", err)
	}

	if err := s.identity.SetRoleMetadata(ctx, p.UserID, invite.Role); err != nil {
		s.logger.Warnf("failed to mirror role into identity metadata: %v", err)
	}

	s.logger.Security().AdminAction(p.UserID, "agent.join", "company:"+invite.CompanyID)

	return agent, nil
}

// RemoveAgent drops the agent from the admin's company and demotes the user
// back to customer.
func (s *Service) RemoveAgent(ctx context.Context, p *types.Principal, id string) error {
	ctx, span := s.tracer.Start(ctx, "agents.Service.RemoveAgent")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return err
	}

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("agent %q: %w", id, storage.ErrNotFound)
	}

	agent, err := s.storage.DeleteAgent(ctx, companyID, id)
	if err != nil {
		return err
	}

	if err := s.storage.SetRole(ctx, agent.UserID, types.RoleCustomer); err != nil {
		return err
	}

	if err := s.authz.RemoveCompanyAgent(ctx, companyID, agent.UserID); err != nil {
		return fmt.Errorf("failed to revoke company permissions: %w", err)
	}

	if err := s.identity.SetRoleMetadata(ctx, agent.UserID, types.RoleCustomer); err != nil {
		s.logger.Warnf("failed to mirror role into identity metadata: %v", err)
	}

	s.logger.Security().AdminAction(p.UserID, "agent.remove", "agent:"+agent.UserID)

	return nil
}

func NewService(
	storage StorageInterface,
	tx TxInterface,
	authz AuthzInterface,
	identity IdentityInterface,
	inviteLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:        storage,
		tx:             tx,
		authz:          authz,
		identity:       identity,
		inviteLifetime: inviteLifetime,
		now:            time.Now,
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}
