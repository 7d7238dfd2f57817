// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_identity.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	userID    = "c1a2b3c4-d5e6-4f70-8192-a3b4c5d6e7f8"
	companyID = "5d2c9a4e-1b3f-4c7a-8e6d-9f0a1b2c3d4e"
)

func TestMiddleware_Resolve(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name        string
		setupMocks  func(*MockStorageInterface)
		expected    *types.Principal
		expectedErr error
	}{
		{
			name: "no role assigned",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.Role(""), storage.ErrNotFound)
			},
			expected: &types.Principal{UserID: userID},
		},
		{
			name: "customer",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.RoleCustomer, nil)
			},
			expected: &types.Principal{UserID: userID, Role: types.RoleCustomer},
		},
		{
			name: "admin with company",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.RoleCompanyAdmin, nil)
				s.EXPECT().GetCompanyByAdmin(gomock.Any(), userID).Return(&types.Company{ID: companyID}, nil)
			},
			expected: &types.Principal{UserID: userID, Role: types.RoleCompanyAdmin, CompanyID: companyID},
		},
		{
			name: "admin before registering a company",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.RoleCompanyAdmin, nil)
				s.EXPECT().GetCompanyByAdmin(gomock.Any(), userID).Return(nil, storage.ErrNotFound)
			},
			expected: &types.Principal{UserID: userID, Role: types.RoleCompanyAdmin},
		},
		{
			name: "agent",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.RoleAgent, nil)
				s.EXPECT().GetAgentByUserID(gomock.Any(), userID).Return(&types.Agent{CompanyID: companyID}, nil)
			},
			expected: &types.Principal{UserID: userID, Role: types.RoleAgent, CompanyID: companyID},
		},
		{
			name: "storage failure",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.Role(""), dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "identity.Middleware.Resolve").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			test.setupMocks(mockStorage)

			m := NewMiddleware(mockStorage, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

			p, err := m.Resolve(context.Background(), userID)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expected != nil && *p != *test.expected {
				t.Fatalf("expected %+v, got %+v", test.expected, p)
			}
		})
	}
}

func TestMiddleware_HTTPMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		email          string
		setupMocks     func(*MockStorageInterface, *MockLoggerInterface)
		expectedStatus int
		expected       *types.Principal
	}{
		{
			name:   "principal carries the session email",
			userID: userID,
			email:  "ada@example.com",
			setupMocks: func(s *MockStorageInterface, _ *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.RoleCustomer, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       &types.Principal{UserID: userID, Email: "ada@example.com", Role: types.RoleCustomer},
		},
		{
			name:           "unauthenticated request",
			setupMocks:     func(*MockStorageInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "role lookup failure",
			userID: userID,
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), userID).Return(types.Role(""), errors.New("timeout"))
				l.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockStorage := NewMockStorageInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				}).AnyTimes()
			test.setupMocks(mockStorage, mockLogger)

			var got *types.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := NewMiddleware(mockStorage, mockTracer, NewMockMonitorInterface(ctrl), mockLogger).HTTPMiddleware(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			ctx := req.Context()
			if test.userID != "" {
				ctx = authentication.WithUserID(ctx, test.userID)
			}
			if test.email != "" {
				ctx = authentication.WithEmail(ctx, test.email)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req.WithContext(ctx))

			if rr.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, rr.Code)
			}
			if test.expected != nil && (got == nil || *got != *test.expected) {
				t.Fatalf("expected principal %+v, got %+v", test.expected, got)
			}
		})
	}
}
