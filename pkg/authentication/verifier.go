// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

var ErrNotAllowed = errors.New("token is not allowed to call the api")

// jwtClaims are the claims read from machine tokens. Issuers disagree on
// whether scopes travel as a space separated "scope" or a "scp" list.
type jwtClaims struct {
	Subject string   `json:"sub"`
	Email   string   `json:"email"`
	Scope   string   `json:"scope"`
	Scopes  []string `json:"scp"`
}

func (c *jwtClaims) hasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope) || slices.Contains(c.Scopes, scope)
}

// JWTVerifier accepts JWTs of machine clients, such as integrations that
// file tickets on behalf of a company. A token passes when its subject is
// allow-listed or it carries the required scope.
type JWTVerifier struct {
	verifier        *oidc.IDTokenVerifier
	allowedSubjects []string
	requiredScope   string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) allowed(c *jwtClaims) bool {
	if slices.Contains(v.allowedSubjects, c.Subject) {
		return true
	}
	return v.requiredScope != "" && c.hasScope(v.requiredScope)
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims jwtClaims
	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("failed to extract claims: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !v.allowed(&claims) {
		v.logger.Security().AuthzFailure(claims.Subject, "jwt_api_access")
		return nil, ErrNotAllowed
	}

	return &Claims{Subject: claims.Subject, Email: claims.Email}, nil
}

func NewJWTVerifier(
	verifier *oidc.IDTokenVerifier,
	allowedSubjects []string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return &JWTVerifier{
		verifier:        verifier,
		allowedSubjects: allowedSubjects,
		requiredScope:   requiredScope,
		tracer:          tracer,
		monitor:         monitor,
		logger:          logger,
	}
}
