// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package agents -destination ./mock_agents.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package agents -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package agents -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package agents -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	companyID   = "5d2c9a4e-1b3f-4c7a-8e6d-9f0a1b2c3d4e"
	adminID     = "e0d1c2b3-a495-4867-8f90-a1b2c3d4e5f6"
	userID      = "c1a2b3c4-d5e6-4f70-8192-a3b4c5d6e7f8"
	inviteID    = "11111111-2222-4333-8444-555555555555"
	inviteToken = "9f8e7d6c-5b4a-4938-8271-605f4e3d2c1b"
	agentRowID  = "77777777-8888-4999-aaaa-bbbbbbbbbbbb"
	lifetime    = 7 * 24 * time.Hour
)

var (
	now   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	admin = &types.Principal{UserID: adminID, Role: types.RoleCompanyAdmin, CompanyID: companyID}
)

type mocks struct {
	storage  *MockStorageInterface
	tx       *MockTxInterface
	authz    *MockAuthzInterface
	identity *MockIdentityInterface
	tracer   *MockTracingInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func setup(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)

	m := &mocks{
		storage:  NewMockStorageInterface(ctrl),
		tx:       NewMockTxInterface(ctrl),
		authz:    NewMockAuthzInterface(ctrl),
		identity: NewMockIdentityInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}
	m.logger.EXPECT().Security().Return(m.security).AnyTimes()
	m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	m.security.EXPECT().AdminAction(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.security.EXPECT().AuthzFailure(gomock.Any(), gomock.Any()).AnyTimes()

	s := NewService(m.storage, m.tx, m.authz, m.identity, lifetime, m.tracer, NewMockMonitorInterface(ctrl), m.logger)
	s.now = func() time.Time { return now }

	return s, m
}

func (m *mocks) expectSpan(name string) {
	ctx := context.Background()
	m.tracer.EXPECT().Start(gomock.Any(), name).Return(ctx, trace.SpanFromContext(ctx))
}

func pendingInvite(expiresAt time.Time) *types.Invite {
	return &types.Invite{
		ID:        inviteID,
		Token:     inviteToken,
		CompanyID: companyID,
		Email:     "ada@example.com",
		Role:      types.RoleAgent,
		CreatedBy: adminID,
		ExpiresAt: expiresAt,
	}
}

func TestService_Invite(t *testing.T) {
	tests := []struct {
		name        string
		principal   *types.Principal
		setupMocks  func(*mocks)
		expectedErr error
	}{
		{
			name:      "admin invites an agent",
			principal: admin,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, i *types.Invite) (*types.Invite, error) {
						if _, err := uuid.Parse(i.Token); err != nil {
							return nil, errors.New("token is not a uuid")
						}
						if i.Email != "ada@example.com" || i.Role != types.RoleAgent || i.CompanyID != companyID || i.CreatedBy != adminID {
							return nil, errors.New("unexpected invite")
						}
						if !i.ExpiresAt.Equal(now.Add(lifetime)) {
							return nil, errors.New("unexpected expiry")
						}
						return i, nil
					},
				)
			},
		},
		{
			name:        "agents cannot invite",
			principal:   &types.Principal{UserID: userID, Role: types.RoleAgent, CompanyID: companyID},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrForbidden,
		},
		{
			name:        "admin without a company",
			principal:   &types.Principal{UserID: adminID, Role: types.RoleCompanyAdmin},
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrNoCompany,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("agents.Service.Invite")
			test.setupMocks(m)

			_, err := s.Invite(context.Background(), test.principal, " Ada@Example.com ")
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
		})
	}
}

func TestService_Accept(t *testing.T) {
	fgaErr := errors.New("openfga down")
	caller := &types.Principal{UserID: userID, Email: "ADA@example.com", Role: types.RoleCustomer}

	tests := []struct {
		name        string
		principal   *types.Principal
		token       string
		setupMocks  func(*mocks)
		expectedErr error
	}{
		{
			name:      "valid invite",
			principal: caller,
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now.Add(time.Hour)), nil)
				m.storage.EXPECT().AddAgent(gomock.Any(), &types.Agent{UserID: userID, CompanyID: companyID, Email: "ada@example.com"}).
					Return(&types.Agent{ID: agentRowID, UserID: userID, CompanyID: companyID}, nil)
				m.storage.EXPECT().SetRole(gomock.Any(), userID, types.RoleAgent).Return(nil)
				m.storage.EXPECT().DeleteInvite(gomock.Any(), inviteID).Return(nil)
				m.authz.EXPECT().AssignCompanyAgent(gomock.Any(), companyID, userID).Return(nil)
				m.identity.EXPECT().SetRoleMetadata(gomock.Any(), userID, types.RoleAgent).Return(nil)
			},
		},
		{
			name:      "email looked up when the session carries none",
			principal: &types.Principal{UserID: userID},
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now.Add(time.Hour)), nil)
				m.identity.EXPECT().GetIdentityEmail(gomock.Any(), userID).Return("ada@example.com", nil)
				m.storage.EXPECT().AddAgent(gomock.Any(), gomock.Any()).Return(&types.Agent{ID: agentRowID}, nil)
				m.storage.EXPECT().SetRole(gomock.Any(), userID, types.RoleAgent).Return(nil)
				m.storage.EXPECT().DeleteInvite(gomock.Any(), inviteID).Return(nil)
				m.authz.EXPECT().AssignCompanyAgent(gomock.Any(), companyID, userID).Return(nil)
				m.identity.EXPECT().SetRoleMetadata(gomock.Any(), userID, types.RoleAgent).Return(errors.New("kratos down"))
			},
		},
		{
			name:      "expired invite is removed",
			principal: caller,
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now), nil)
				m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
				)
				m.storage.EXPECT().DeleteInvite(gomock.Any(), inviteID).Return(nil)
			},
			expectedErr: ErrInviteExpired,
		},
		{
			name:      "unknown token",
			principal: caller,
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrInviteNotFound,
		},
		{
			name:        "malformed token",
			principal:   caller,
			token:       "not-a-token",
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrInviteNotFound,
		},
		{
			name:      "invite for someone else",
			principal: &types.Principal{UserID: userID, Email: "eve@example.com", Role: types.RoleCustomer},
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now.Add(time.Hour)), nil)
			},
			expectedErr: ErrEmailMismatch,
		},
		{
			name:        "company admins cannot become agents",
			principal:   admin,
			token:       inviteToken,
			setupMocks:  func(m *mocks) {},
			expectedErr: ErrAlreadyAgent,
		},
		{
			name:      "already an agent elsewhere",
			principal: caller,
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now.Add(time.Hour)), nil)
				m.storage.EXPECT().AddAgent(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedErr: ErrAlreadyAgent,
		},
		{
			name:      "permission write failure aborts",
			principal: caller,
			token:     inviteToken,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetInviteByToken(gomock.Any(), inviteToken).Return(pendingInvite(now.Add(time.Hour)), nil)
				m.storage.EXPECT().AddAgent(gomock.Any(), gomock.Any()).Return(&types.Agent{ID: agentRowID}, nil)
				m.storage.EXPECT().SetRole(gomock.Any(), userID, types.RoleAgent).Return(nil)
				m.storage.EXPECT().DeleteInvite(gomock.Any(), inviteID).Return(nil)
				m.authz.EXPECT().AssignCompanyAgent(gomock.Any(), companyID, userID).Return(fgaErr)
			},
			expectedErr: fgaErr,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("agents.Service.Accept")
			test.setupMocks(m)

			agent, err := s.Accept(context.Background(), test.principal, test.token)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expectedErr == nil && agent == nil {
				t.Fatal("expected an agent")
			}
		})
	}
}

func TestService_RemoveAgent(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		setupMocks  func(*mocks)
		expectedErr error
	}{
		{
			name: "agent demoted to customer",
			id:   agentRowID,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().DeleteAgent(gomock.Any(), companyID, agentRowID).Return(&types.Agent{ID: agentRowID, UserID: userID}, nil)
				m.storage.EXPECT().SetRole(gomock.Any(), userID, types.RoleCustomer).Return(nil)
				m.authz.EXPECT().RemoveCompanyAgent(gomock.Any(), companyID, userID).Return(nil)
				m.identity.EXPECT().SetRoleMetadata(gomock.Any(), userID, types.RoleCustomer).Return(nil)
			},
		},
		{
			name: "agent of another company",
			id:   agentRowID,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().DeleteAgent(gomock.Any(), companyID, agentRowID).Return(nil, storage.ErrNotFound)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name:        "malformed id",
			id:          "42",
			setupMocks:  func(m *mocks) {},
			expectedErr: storage.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := setup(t)
			m.expectSpan("agents.Service.RemoveAgent")
			test.setupMocks(m)

			if err := s.RemoveAgent(context.Background(), admin, test.id); !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
		})
	}
}
