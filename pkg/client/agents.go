// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/canonical/autocrm/internal/types"
)

type inviteRequest struct {
	Email string `json:"email"`
}

// Me returns the role assignment of the signed in user.
func (c *Client) Me(ctx context.Context) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.Me")
	defer span.End()

	p := new(types.Principal)
	if err := c.do(ctx, http.MethodGet, "/me", nil, "", nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) ListAgents(ctx context.Context) ([]*types.Agent, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListAgents")
	defer span.End()

	agents := make([]*types.Agent, 0)
	if err := c.do(ctx, http.MethodGet, "/company/agents", nil, "", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) RemoveAgent(ctx context.Context, id string) error {
	ctx, span := c.tracer.Start(ctx, "client.Client.RemoveAgent")
	defer span.End()

	return c.do(ctx, http.MethodDelete, "/company/agents/"+url.PathEscape(id), nil, "", nil, nil)
}

func (c *Client) ListInvites(ctx context.Context) ([]*types.Invite, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListInvites")
	defer span.End()

	invites := make([]*types.Invite, 0)
	if err := c.do(ctx, http.MethodGet, "/company/invites", nil, "", nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

func (c *Client) Invite(ctx context.Context, email string) (*types.Invite, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.Invite")
	defer span.End()

	invite := new(types.Invite)
	if err := c.do(ctx, http.MethodPost, "/company/invites", nil, "", inviteRequest{Email: email}, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

func (c *Client) AcceptInvite(ctx context.Context, token string) (*types.Agent, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.AcceptInvite")
	defer span.End()

	agent := new(types.Agent)
	if err := c.do(ctx, http.MethodPost, "/invites/"+url.PathEscape(token)+"/accept", nil, "", nil, agent); err != nil {
		return nil, err
	}
	return agent, nil
}
