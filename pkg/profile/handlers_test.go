// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/types"
)

func TestAPI_Me(t *testing.T) {
	tests := []struct {
		name           string
		principal      *types.Principal
		expectedStatus int
		expected       Profile
	}{
		{
			name:           "agent",
			principal:      &types.Principal{UserID: "u1", Role: types.RoleAgent, CompanyID: "c1"},
			expectedStatus: http.StatusOK,
			expected:       Profile{UserID: "u1", Role: types.RoleAgent, CompanyID: "c1"},
		},
		{
			name:           "no role assigned yet",
			principal:      &types.Principal{UserID: "u2"},
			expectedStatus: http.StatusOK,
			expected:       Profile{UserID: "u2"},
		},
		{
			name:           "no principal",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router := chi.NewRouter()
			NewAPI().RegisterEndpoints(router)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			if test.principal != nil {
				req = req.WithContext(identity.WithPrincipal(req.Context(), test.principal))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, rr.Code)
			}
			if rr.Code != http.StatusOK {
				return
			}

			var got Profile
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if got != test.expected {
				t.Fatalf("expected %+v, got %+v", test.expected, got)
			}
		})
	}
}
