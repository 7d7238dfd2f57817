// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

// Config selects which bearer tokens the api accepts besides Kratos
// sessions. JWTs are only accepted when Issuer is set.
type Config struct {
	Issuer string
	// JWKSURL skips OIDC discovery when set.
	JWKSURL         string
	AllowedSubjects []string
	RequiredScope   string
}

// NewVerifier accepts Kratos session tokens and, when an issuer is
// configured, JWTs of machine clients.
func NewVerifier(
	ctx context.Context,
	cfg Config,
	sessions SessionResolverInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*ChainVerifier, error) {
	verifiers := []TokenVerifierInterface{
		NewSessionVerifier(sessions, tracer, monitor, logger),
	}

	if cfg.Issuer == "" {
		return NewChainVerifier(verifiers...), nil
	}

	if len(cfg.AllowedSubjects) == 0 && cfg.RequiredScope == "" {
		return nil, errors.New("JWT authentication needs allowed subjects or a required scope")
	}

	idTokens, err := idTokenVerifier(ctx, cfg.Issuer, cfg.JWKSURL)
	if err != nil {
		return nil, err
	}

	if cfg.JWKSURL != "" {
		logger.Infof("JWT authentication enabled for %s with keys from %s", cfg.Issuer, cfg.JWKSURL)
	} else {
		logger.Infof("JWT authentication enabled for %s", cfg.Issuer)
	}

	verifiers = append(verifiers, NewJWTVerifier(idTokens, cfg.AllowedSubjects, cfg.RequiredScope, tracer, monitor, logger))

	return NewChainVerifier(verifiers...), nil
}

func idTokenVerifier(ctx context.Context, issuer, jwksURL string) (*oidc.IDTokenVerifier, error) {
	ctx = oidc.ClientContext(ctx, tracing.NewHTTPClient())
	config := &oidc.Config{SkipClientIDCheck: true}

	if jwksURL != "" {
		return oidc.NewVerifier(issuer, oidc.NewRemoteKeySet(ctx, jwksURL), config), nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider %s: %w", issuer, err)
	}

	return provider.Verifier(config), nil
}
