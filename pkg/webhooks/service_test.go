// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestSelfServiceRole(t *testing.T) {
	tests := map[string]types.Role{
		"customer":      types.RoleCustomer,
		"company_admin": types.RoleCompanyAdmin,
		"agent":         types.RoleCustomer,
		"":              types.RoleCustomer,
		"root":          types.RoleCustomer,
	}

	for requested, expected := range tests {
		if got := SelfServiceRole(requested); got != expected {
			t.Errorf("SelfServiceRole(%q) = %q, expected %q", requested, got, expected)
		}
	}
}

func TestService_HandleRegistration(t *testing.T) {
	identityID := "identity-123"
	email := "user@example.com"
	dbErr := errors.New("db error")

	testCases := []struct {
		name         string
		identityID   string
		role         string
		setupMocks   func(*MockStorageInterface, *MockIdentityInterface, *MockLoggerInterface)
		expectedRole types.Role
		expectedErr  error
	}{
		{
			name:       "company admin sign up",
			identityID: identityID,
			role:       "company_admin",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityInterface, l *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), identityID).Return(types.RoleNone, storage.ErrNotFound)
				s.EXPECT().SetRole(gomock.Any(), identityID, types.RoleCompanyAdmin).Return(nil)
				i.EXPECT().SetRoleMetadata(gomock.Any(), identityID, types.RoleCompanyAdmin).Return(nil)
				l.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedRole: types.RoleCompanyAdmin,
		},
		{
			name:       "agent cannot be self assigned",
			identityID: identityID,
			role:       "agent",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityInterface, l *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), identityID).Return(types.RoleNone, storage.ErrNotFound)
				s.EXPECT().SetRole(gomock.Any(), identityID, types.RoleCustomer).Return(nil)
				i.EXPECT().SetRoleMetadata(gomock.Any(), identityID, types.RoleCustomer).Return(errors.New("kratos down"))
				l.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
				l.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedRole: types.RoleCustomer,
		},
		{
			name:       "replayed hook keeps the existing role",
			identityID: identityID,
			role:       "customer",
			setupMocks: func(s *MockStorageInterface, i *MockIdentityInterface, l *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), identityID).Return(types.RoleAgent, nil)
				l.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedRole: types.RoleAgent,
		},
		{
			name:        "missing identity",
			setupMocks:  func(*MockStorageInterface, *MockIdentityInterface, *MockLoggerInterface) {},
			expectedErr: ErrMissingIdentity,
		},
		{
			name:       "storage failure",
			identityID: identityID,
			setupMocks: func(s *MockStorageInterface, i *MockIdentityInterface, l *MockLoggerInterface) {
				s.EXPECT().GetRole(gomock.Any(), identityID).Return(types.RoleNone, storage.ErrNotFound)
				s.EXPECT().SetRole(gomock.Any(), identityID, types.RoleCustomer).Return(dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockIdentity := NewMockIdentityInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleRegistration").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			tc.setupMocks(mockStorage, mockIdentity, mockLogger)

			svc := NewService(mockStorage, mockIdentity, mockTracer, mockMonitor, mockLogger)

			role, err := svc.HandleRegistration(context.Background(), tc.identityID, email, tc.role)
			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
			}
			if role != tc.expectedRole {
				t.Fatalf("expected role %q, got %q", tc.expectedRole, role)
			}
		})
	}
}
