// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"

	ory "github.com/ory/client-go"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

type ClientInterface interface {
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
	SetRoleMetadata(ctx context.Context, id string, role types.Role) error
}

// Client talks to the Kratos admin API.
type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	conf.HTTPClient = tracing.NewHTTPClient()
	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentity")
	defer span.End()

	identity, _, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

func (c *Client) GetIdentityEmail(ctx context.Context, id string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityEmail")
	defer span.End()

	identity, err := c.GetIdentity(ctx, id)
	if err != nil {
		return "", err
	}

	email := traitString(identity.GetTraits(), "email")
	if email == "" {
		return "", fmt.Errorf("identity %s has no email trait", id)
	}

	return email, nil
}

// SetRoleMetadata mirrors the assigned role into the identity's public
// metadata, which clients read when the role table is unreachable.
func (c *Client) SetRoleMetadata(ctx context.Context, id string, role types.Role) error {
	ctx, span := c.tracer.Start(ctx, "kratos.SetRoleMetadata")
	defer span.End()

	patch := []ory.JsonPatch{
		{
			Op:    "add",
			Path:  "/metadata_public",
			Value: map[string]interface{}{"role": string(role)},
		},
	}

	_, _, err := c.client.IdentityAPI.PatchIdentity(ctx, id).JsonPatch(patch).Execute()
	if err != nil {
		return fmt.Errorf("failed to patch identity metadata: %w", err)
	}

	return nil
}

func traitString(traits interface{}, key string) string {
	m, ok := traits.(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := m[key].(string)
	return v
}
