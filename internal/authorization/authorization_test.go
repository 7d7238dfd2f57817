// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/openfga"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func setup(t *testing.T) (*Authorizer, *MockAuthzClientInterface, *MockTracingInterface) {
	ctrl := gomock.NewController(t)

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	return NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger), mockClient, mockTracer
}

func expectSpan(tracer *MockTracingInterface, name string) {
	tracer.EXPECT().Start(gomock.Any(), name).
		Return(context.Background(), trace.SpanFromContext(context.Background()))
}

func TestAuthorizer_Check(t *testing.T) {
	user := "user:123"
	relation := "can_view"
	object := "ticket:456"
	contextualTuples := []openfga.Tuple{*openfga.NewTuple("company:789", "company", "ticket:456")}

	testCases := []struct {
		name           string
		setupMocks     func(*MockAuthzClientInterface)
		expectedResult bool
		expectedErr    bool
	}{
		{
			name: "success - allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(true, nil)
			},
			expectedResult: true,
		},
		{
			name: "success - not allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, nil)
			},
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, errors.New("client error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setup(t)

			expectSpan(mockTracer, "authorization.Authorizer.Check")
			tc.setupMocks(mockClient)

			result, err := a.Check(context.Background(), user, relation, object, contextualTuples...)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if result != tc.expectedResult {
				t.Errorf("expected result %v, got %v", tc.expectedResult, result)
			}
		})
	}
}

func TestAuthorizer_FilterObjects(t *testing.T) {
	user := "user:123"
	requested := []string{"ticket:1", "ticket:2", "ticket:3", "ticket:4"}

	testCases := []struct {
		name           string
		setupMocks     func(*MockAuthzClientInterface)
		expectedResult []string
		expectedErr    bool
	}{
		{
			name: "success - keeps requested order",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ListObjects(gomock.Any(), user, CAN_VIEW_PERMISSION, "ticket").
					Return([]string{"ticket:3", "ticket:1", "ticket:5"}, nil)
			},
			expectedResult: []string{"ticket:1", "ticket:3"},
		},
		{
			name: "success - no overlap",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ListObjects(gomock.Any(), user, CAN_VIEW_PERMISSION, "ticket").
					Return([]string{"ticket:9"}, nil)
			},
		},
		{
			name: "error - list objects error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ListObjects(gomock.Any(), user, CAN_VIEW_PERMISSION, "ticket").
					Return(nil, errors.New("client error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setup(t)

			expectSpan(mockTracer, "authorization.Authorizer.FilterObjects")
			expectSpan(mockTracer, "authorization.Authorizer.ListObjects")
			tc.setupMocks(mockClient)

			result, err := a.FilterObjects(context.Background(), user, CAN_VIEW_PERMISSION, "ticket", requested)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(result) != len(tc.expectedResult) {
				t.Fatalf("expected %v, got %v", tc.expectedResult, result)
			}
			for i := range result {
				if result[i] != tc.expectedResult[i] {
					t.Errorf("expected %v, got %v", tc.expectedResult, result)
				}
			}
		})
	}
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
	}{
		{
			name: "success - models match",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "error - models differ",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, errors.New("client error"))
			},
			expectedErr: errors.New("client error"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setup(t)

			expectSpan(mockTracer, "authorization.Authorizer.ValidateModel")
			tc.setupMocks(mockClient)

			err := a.ValidateModel(context.Background())

			if tc.expectedErr != nil {
				if err == nil {
					t.Errorf("expected error %v but got none", tc.expectedErr)
				} else if tc.expectedErr == ErrInvalidAuthModel && !errors.Is(err, ErrInvalidAuthModel) {
					t.Errorf("expected ErrInvalidAuthModel but got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_CompanyRelations(t *testing.T) {
	companyID := "company-123"
	userID := "user-456"
	writeErr := errors.New("write error")

	testCases := []struct {
		name        string
		span        string
		setupMocks  func(*MockAuthzClientInterface)
		call        func(*Authorizer) error
		expectedErr error
	}{
		{
			name: "assign admin",
			span: "authorization.Authorizer.AssignCompanyAdmin",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), ADMIN_RELATION, CompanyTuple(companyID)).Return(nil)
			},
			call: func(a *Authorizer) error { return a.AssignCompanyAdmin(context.Background(), companyID, userID) },
		},
		{
			name: "assign agent",
			span: "authorization.Authorizer.AssignCompanyAgent",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), AGENT_RELATION, CompanyTuple(companyID)).Return(nil)
			},
			call: func(a *Authorizer) error { return a.AssignCompanyAgent(context.Background(), companyID, userID) },
		},
		{
			name: "assign agent fails",
			span: "authorization.Authorizer.AssignCompanyAgent",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().WriteTuple(gomock.Any(), UserTuple(userID), AGENT_RELATION, CompanyTuple(companyID)).Return(writeErr)
			},
			call:        func(a *Authorizer) error { return a.AssignCompanyAgent(context.Background(), companyID, userID) },
			expectedErr: writeErr,
		},
		{
			name: "remove agent",
			span: "authorization.Authorizer.RemoveCompanyAgent",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().DeleteTuple(gomock.Any(), UserTuple(userID), AGENT_RELATION, CompanyTuple(companyID)).Return(nil)
			},
			call: func(a *Authorizer) error { return a.RemoveCompanyAgent(context.Background(), companyID, userID) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setup(t)

			expectSpan(mockTracer, tc.span)
			tc.setupMocks(mockClient)

			err := tc.call(a)

			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected error %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_LinkTicket(t *testing.T) {
	ticketID := "ticket-1"
	customerID := "user-1"

	testCases := []struct {
		name      string
		companyID string
		expected  []openfga.Tuple
	}{
		{
			name: "customer only",
			expected: []openfga.Tuple{
				*openfga.NewTuple("user:user-1", CUSTOMER_RELATION, "ticket:ticket-1"),
			},
		},
		{
			name:      "customer and company",
			companyID: "company-1",
			expected: []openfga.Tuple{
				*openfga.NewTuple("user:user-1", CUSTOMER_RELATION, "ticket:ticket-1"),
				*openfga.NewTuple("company:company-1", COMPANY_RELATION, "ticket:ticket-1"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, mockTracer := setup(t)

			expectSpan(mockTracer, "authorization.Authorizer.LinkTicket")
			mockClient.EXPECT().WriteTuples(gomock.Any(), tc.expected).Return(nil)

			if err := a.LinkTicket(context.Background(), ticketID, customerID, tc.companyID); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthorizer_TicketPermissions(t *testing.T) {
	a, mockClient, mockTracer := setup(t)

	expectSpan(mockTracer, "authorization.Authorizer.CanViewTicket")
	expectSpan(mockTracer, "authorization.Authorizer.CanEditTicket")
	mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.Check").
		Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)

	mockClient.EXPECT().Check(gomock.Any(), "user:agent-1", CAN_VIEW_PERMISSION, "ticket:ticket-1").Return(true, nil)
	mockClient.EXPECT().Check(gomock.Any(), "user:agent-1", CAN_EDIT_PERMISSION, "ticket:ticket-1").Return(false, nil)

	view, err := a.CanViewTicket(context.Background(), "ticket-1", "agent-1")
	if err != nil || !view {
		t.Errorf("expected view to be allowed, got %v %v", view, err)
	}

	edit, err := a.CanEditTicket(context.Background(), "ticket-1", "agent-1")
	if err != nil || edit {
		t.Errorf("expected edit to be denied, got %v %v", edit, err)
	}
}

func TestAuthorizationModel(t *testing.T) {
	model := NewAuthorizationModelProvider("v0").GetModel()

	if model.GetSchemaVersion() != "1.1" {
		t.Errorf("expected schema 1.1, got %s", model.GetSchemaVersion())
	}

	types := make(map[string]bool)
	for _, td := range model.GetTypeDefinitions() {
		types[td.GetType()] = true
	}
	for _, expected := range []string{"user", "company", "ticket"} {
		if !types[expected] {
			t.Errorf("expected type %s in model", expected)
		}
	}
}
