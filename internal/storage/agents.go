// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/types"
)

func (s *Storage) AddAgent(ctx context.Context, a *types.Agent) (*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddAgent")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agent ID: %w", err)
	}

	var created types.Agent
	err = s.db.Statement(ctx).
		Insert("agents").
		Columns("id", "user_id", "company_id", "email").
		Values(id.String(), a.UserID, a.CompanyID, a.Email).
		Suffix("RETURNING id, user_id, company_id, email, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.UserID, &created.CompanyID, &created.Email, &created.CreatedAt)

	if err != nil {
		return nil, writeError(err, "insert agent")
	}

	return &created, nil
}

func (s *Storage) GetAgentByUserID(ctx context.Context, userID string) (*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAgentByUserID")
	defer span.End()

	var a types.Agent
	err := s.db.Statement(ctx).
		Select("id", "user_id", "company_id", "email", "created_at").
		From("agents").
		Where(sq.Eq{"user_id": userID}).
		QueryRowContext(ctx).
		Scan(&a.ID, &a.UserID, &a.CompanyID, &a.Email, &a.CreatedAt)

	if err != nil {
		return nil, readError(err, "get agent")
	}

	return &a, nil
}

func (s *Storage) ListAgents(ctx context.Context, companyID string) ([]*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAgents")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "user_id", "company_id", "email", "created_at").
		From("agents").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	agents := make([]*types.Agent, 0)
	for rows.Next() {
		var a types.Agent
		if err := rows.Scan(&a.ID, &a.UserID, &a.CompanyID, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return agents, nil
}

func (s *Storage) CountAgents(ctx context.Context, companyID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountAgents")
	defer span.End()

	var count int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("agents").
		Where(sq.Eq{"company_id": companyID}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count agents: %w", err)
	}

	return count, nil
}

// DeleteAgent removes the agent from the company and returns the removed row.
func (s *Storage) DeleteAgent(ctx context.Context, companyID, id string) (*types.Agent, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteAgent")
	defer span.End()

	var a types.Agent
	err := s.db.Statement(ctx).
		Delete("agents").
		Where(sq.Eq{"id": id, "company_id": companyID}).
		Suffix("RETURNING id, user_id, company_id, email, created_at").
		QueryRowContext(ctx).
		Scan(&a.ID, &a.UserID, &a.CompanyID, &a.Email, &a.CreatedAt)

	if err != nil {
		return nil, readError(err, "delete agent")
	}

	return &a, nil
}

func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	var created types.Invite
	err = s.db.Statement(ctx).
		Insert("agent_invites").
		Columns("id", "token", "company_id", "email", "role", "created_by", "expires_at").
		Values(id.String(), invite.Token, invite.CompanyID, invite.Email, invite.Role, invite.CreatedBy, invite.ExpiresAt).
		Suffix("RETURNING id, token, company_id, email, role, created_by, expires_at, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Token, &created.CompanyID, &created.Email, &created.Role, &created.CreatedBy, &created.ExpiresAt, &created.CreatedAt)

	if err != nil {
		return nil, writeError(err, "insert invite")
	}

	return &created, nil
}

func (s *Storage) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByToken")
	defer span.End()

	var i types.Invite
	err := s.db.Statement(ctx).
		Select("id", "token", "company_id", "email", "role", "created_by", "expires_at", "created_at").
		From("agent_invites").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.Token, &i.CompanyID, &i.Email, &i.Role, &i.CreatedBy, &i.ExpiresAt, &i.CreatedAt)

	if err != nil {
		return nil, readError(err, "get invite")
	}

	return &i, nil
}

func (s *Storage) ListInvites(ctx context.Context, companyID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvites")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "token", "company_id", "email", "role", "created_by", "expires_at", "created_at").
		From("agent_invites").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	invites := make([]*types.Invite, 0)
	for rows.Next() {
		var i types.Invite
		if err := rows.Scan(&i.ID, &i.Token, &i.CompanyID, &i.Email, &i.Role, &i.CreatedBy, &i.ExpiresAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invites, nil
}

func (s *Storage) DeleteInvite(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteInvite")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("agent_invites").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}
	return nil
}
