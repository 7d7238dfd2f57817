// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionVerifier accepts Kratos session tokens, the bearer tokens of
// interactive users.
type SessionVerifier struct {
	sessions SessionResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *SessionVerifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.SessionVerifier.VerifyToken")
	defer span.End()

	session, err := v.sessions.WhoAmI(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Claims{Subject: session.UserID, Email: session.Email}, nil
}

func NewSessionVerifier(sessions SessionResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SessionVerifier {
	return &SessionVerifier{
		sessions: sessions,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// ChainVerifier tries each verifier in turn and accepts the first success.
type ChainVerifier struct {
	verifiers []TokenVerifierInterface
}

func (c *ChainVerifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	errs := make([]error, 0, len(c.verifiers))

	for _, v := range c.verifiers {
		claims, err := v.VerifyToken(ctx, rawToken)
		if err == nil {
			return claims, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, ErrInvalidToken
	}

	return nil, errors.Join(errs...)
}

// NewChainVerifier skips nil verifiers so optional ones can be passed unconditionally.
func NewChainVerifier(verifiers ...TokenVerifierInterface) *ChainVerifier {
	c := new(ChainVerifier)
	for _, v := range verifiers {
		if v != nil {
			c.verifiers = append(c.verifiers, v)
		}
	}
	return c
}
