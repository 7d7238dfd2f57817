// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agents

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/types"
)

func TestAPI_Endpoints(t *testing.T) {
	caller := &types.Principal{UserID: userID, Role: types.RoleCustomer}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		principal      *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "no agents yet",
			method:    http.MethodGet,
			path:      "/api/v0/company/agents",
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListAgents(gomock.Any(), admin).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[]\n",
		},
		{
			name:      "invite",
			method:    http.MethodPost,
			path:      "/api/v0/company/invites",
			body:      `{"email":"ada@example.com"}`,
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Invite(gomock.Any(), admin, "ada@example.com").Return(pendingInvite(now), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invite without a valid email",
			method:         http.MethodPost,
			path:           "/api/v0/company/invites",
			body:           `{"email":"ada"}`,
			principal:      admin,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "accept",
			method:    http.MethodPost,
			path:      "/api/v0/invites/" + inviteToken + "/accept",
			principal: caller,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Accept(gomock.Any(), caller, inviteToken).Return(&types.Agent{ID: agentRowID}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "accept expired",
			method:    http.MethodPost,
			path:      "/api/v0/invites/" + inviteToken + "/accept",
			principal: caller,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Accept(gomock.Any(), caller, inviteToken).Return(nil, ErrInviteExpired)
			},
			expectedStatus: http.StatusGone,
		},
		{
			name:      "accept for another email",
			method:    http.MethodPost,
			path:      "/api/v0/invites/" + inviteToken + "/accept",
			principal: caller,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().Accept(gomock.Any(), caller, inviteToken).Return(nil, ErrEmailMismatch)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "remove agent",
			method:    http.MethodDelete,
			path:      "/api/v0/company/agents/" + agentRowID,
			principal: admin,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().RemoveAgent(gomock.Any(), admin, agentRowID).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "unauthenticated",
			method:         http.MethodGet,
			path:           "/api/v0/company/invites",
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
			test.setupMocks(mockService)

			router := chi.NewRouter()
			NewAPI(mockService, mockLogger).RegisterEndpoints(router)

			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			if test.principal != nil {
				req = req.WithContext(identity.WithPrincipal(req.Context(), test.principal))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, rr.Code, rr.Body.String())
			}
			if test.expectedBody != "" && rr.Body.String() != test.expectedBody {
				t.Fatalf("expected body %q, got %q", test.expectedBody, rr.Body.String())
			}
		})
	}
}
