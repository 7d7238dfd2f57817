// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/kratos"
)

func TestSessionVerifier_VerifyToken(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockSessionResolverInterface)
		expected    *Claims
		expectedErr error
	}{
		{
			name: "active session",
			setupMocks: func(r *MockSessionResolverInterface) {
				r.EXPECT().WhoAmI(gomock.Any(), "ory_st_token").Return(&kratos.Session{UserID: "user-1", Email: "ada@example.com"}, nil)
			},
			expected: &Claims{Subject: "user-1", Email: "ada@example.com"},
		},
		{
			name: "no session",
			setupMocks: func(r *MockSessionResolverInterface) {
				r.EXPECT().WhoAmI(gomock.Any(), "ory_st_token").Return(nil, kratos.ErrNoSession)
			},
			expectedErr: ErrInvalidToken,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockResolver := NewMockSessionResolverInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.SessionVerifier.VerifyToken").Return(ctx, trace.SpanFromContext(ctx))
			test.setupMocks(mockResolver)

			v := NewSessionVerifier(mockResolver, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

			claims, err := v.VerifyToken(ctx, "ory_st_token")

			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expected != nil && *claims != *test.expected {
				t.Fatalf("expected %+v, got %+v", test.expected, claims)
			}
		})
	}
}

func TestChainVerifier(t *testing.T) {
	errJWT := errors.New("not a jwt")
	errSession := errors.New("no session")

	tests := []struct {
		name        string
		setupMocks  func(first, second *MockTokenVerifierInterface)
		expectedSub string
		expectedErr []error
	}{
		{
			name: "first verifier accepts",
			setupMocks: func(first, second *MockTokenVerifierInterface) {
				first.EXPECT().VerifyToken(gomock.Any(), "token").Return(&Claims{Subject: "machine"}, nil)
			},
			expectedSub: "machine",
		},
		{
			name: "falls through to second",
			setupMocks: func(first, second *MockTokenVerifierInterface) {
				first.EXPECT().VerifyToken(gomock.Any(), "token").Return(nil, errJWT)
				second.EXPECT().VerifyToken(gomock.Any(), "token").Return(&Claims{Subject: "user-1"}, nil)
			},
			expectedSub: "user-1",
		},
		{
			name: "all reject",
			setupMocks: func(first, second *MockTokenVerifierInterface) {
				first.EXPECT().VerifyToken(gomock.Any(), "token").Return(nil, errJWT)
				second.EXPECT().VerifyToken(gomock.Any(), "token").Return(nil, errSession)
			},
			expectedErr: []error{errJWT, errSession},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			first := NewMockTokenVerifierInterface(ctrl)
			second := NewMockTokenVerifierInterface(ctrl)
			test.setupMocks(first, second)

			claims, err := NewChainVerifier(first, nil, second).VerifyToken(context.Background(), "token")

			for _, e := range test.expectedErr {
				if !errors.Is(err, e) {
					t.Fatalf("expected %v in %v", e, err)
				}
			}
			if test.expectedSub != "" && (err != nil || claims.Subject != test.expectedSub) {
				t.Fatalf("expected subject %s, got %+v, %v", test.expectedSub, claims, err)
			}
		})
	}
}

func TestEmptyChainVerifierRejects(t *testing.T) {
	if _, err := NewChainVerifier().VerifyToken(context.Background(), "token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
