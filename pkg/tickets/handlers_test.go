// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tickets

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/types"
)

func TestAPI_Endpoints(t *testing.T) {
	urgent := types.PriorityUrgent

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		principal      *types.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:      "list with filters",
			method:    http.MethodGet,
			path:      "/api/v0/tickets?status=open&priority=all&search=login&limit=20",
			principal: customer,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListTickets(gomock.Any(), customer, types.TicketFilter{Status: "open", Priority: "all", Search: "login", Limit: 20}).
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list with bad limit",
			method:         http.MethodGet,
			path:           "/api/v0/tickets?limit=-1",
			principal:      customer,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no principal",
			method:         http.MethodGet,
			path:           "/api/v0/tickets",
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "create",
			method:    http.MethodPost,
			path:      "/api/v0/tickets",
			body:      `{"title":"Login issue","description":"cannot login","priority":"urgent","status":"open","customer_id":"` + customerID + `"}`,
			principal: customer,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().CreateTicket(gomock.Any(), customer, &CreateTicketRequest{
					Title: "Login issue", Description: "cannot login", Priority: urgent, Status: types.StatusOpen, CustomerID: customerID,
				}).Return(ticket(types.StatusOpen), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create missing title",
			method:         http.MethodPost,
			path:           "/api/v0/tickets",
			body:           `{"description":"cannot login","priority":"urgent"}`,
			principal:      customer,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "create unknown priority",
			method:         http.MethodPost,
			path:           "/api/v0/tickets",
			body:           `{"title":"a","description":"b","priority":"asap"}`,
			principal:      customer,
			setupMocks:     func(s *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "get missing ticket",
			method:    http.MethodGet,
			path:      "/api/v0/tickets/" + ticketID,
			principal: customer,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().GetTicket(gomock.Any(), customer, ticketID).Return(nil, storage.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    storage.ErrNotFound.Error(),
		},
		{
			name:      "illegal status change",
			method:    http.MethodPatch,
			path:      "/api/v0/tickets/" + ticketID,
			body:      `{"status":"closed"}`,
			principal: agent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().UpdateTicket(gomock.Any(), agent, ticketID, gomock.Any()).Return(nil, types.ErrInvalidTransition)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:      "customer status change",
			method:    http.MethodPatch,
			path:      "/api/v0/tickets/" + ticketID,
			body:      `{"status":"in_progress"}`,
			principal: customer,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().UpdateTicket(gomock.Any(), customer, ticketID, gomock.Any()).Return(nil, ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "note defaults to private",
			method:    http.MethodPost,
			path:      "/api/v0/tickets/" + ticketID + "/notes",
			body:      `{"content":"vip"}`,
			principal: agent,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().AddNote(gomock.Any(), agent, ticketID, "vip", true).Return(&types.TicketNote{ID: "n"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:      "internal errors are not leaked",
			method:    http.MethodGet,
			path:      "/api/v0/tickets/" + ticketID + "/messages",
			principal: customer,
			setupMocks: func(s *MockServiceInterface) {
				s.EXPECT().ListMessages(gomock.Any(), customer, ticketID).Return(nil, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal Server Error",
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

			if test.expectedMsg != "" {
				var body httptypes.ErrorResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid error body: %v", err)
				}
				if body.Message != test.expectedMsg || body.Status != test.expectedStatus {
					t.Fatalf("unexpected error body %+v", body)
				}
			}
		})
	}
}
