// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

const testKey = "anon-key"

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := kratos.NewMemoryTokenStore()
	_ = tokens.Save(token)

	logger := logging.NewNoopLogger()
	c, err := NewClient(srv.URL, testKey, tokens, 5*time.Second, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm", logger), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	logger := logging.NewNoopLogger()
	_, err := NewClient("localhost", testKey, nil, time.Second, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm", logger), logger)
	if !errors.Is(err, ErrInvalidServiceURL) {
		t.Fatalf("expected ErrInvalidServiceURL, got %v", err)
	}
}

func TestClient_ListTickets(t *testing.T) {
	tests := []struct {
		name          string
		filter        types.TicketFilter
		token         string
		expectedQuery map[string]string
		expectedAuth  string
	}{
		{
			name:          "all filters are dropped",
			filter:        types.TicketFilter{Status: types.FilterAll, Priority: types.FilterAll},
			token:         "ory_st_abc",
			expectedQuery: map[string]string{},
			expectedAuth:  "Bearer ory_st_abc",
		},
		{
			name:          "equality filters and search",
			filter:        types.TicketFilter{Status: "open", Priority: "urgent", Search: "login issue", Limit: 20},
			expectedQuery: map[string]string{"status": "open", "priority": "urgent", "search": "login issue", "limit": "20"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v0/tickets" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("apikey") != testKey {
					t.Errorf("missing api key")
				}
				if got := r.Header.Get("Authorization"); got != test.expectedAuth {
					t.Errorf("expected authorization %q, got %q", test.expectedAuth, got)
				}

				query := r.URL.Query()
				if len(query) != len(test.expectedQuery) {
					t.Errorf("expected query %v, got %v", test.expectedQuery, query)
				}
				for k, v := range test.expectedQuery {
					if query.Get(k) != v {
						t.Errorf("expected %s=%q, got %q", k, v, query.Get(k))
					}
				}

				_, _ = io.WriteString(w, `[{"id":"t1","priority":"urgent","status":"open"}]`)
			}, test.token)

			tickets, err := c.ListTickets(context.Background(), test.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tickets) != 1 || tickets[0].Priority != types.PriorityUrgent {
				t.Fatalf("unexpected tickets %+v", tickets)
			}
		})
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{name: "json error body", status: http.StatusForbidden, body: `{"status":403,"message":"staff only"}`, expectedMessage: "staff only"},
		{name: "plain text body", status: http.StatusBadGateway, body: "upstream down\n", expectedMessage: "upstream down"},
		{name: "empty body", status: http.StatusNotFound, expectedMessage: "Not Found"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				_, _ = io.WriteString(w, test.body)
			}, "")

			_, err := c.GetTicket(context.Background(), "t1")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != test.status || apiErr.Message != test.expectedMessage {
				t.Fatalf("unexpected error %+v", apiErr)
			}
			if !IsStatus(err, test.status) {
				t.Fatalf("IsStatus should match %d", test.status)
			}
		})
	}
}

func TestClient_CreateTicket(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}

		var in NewTicket
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("invalid body: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.Ticket{ID: "t9", Title: in.Title, Priority: in.Priority, Status: in.Status, CustomerID: in.CustomerID})
	}, "tok")

	ticket, err := c.CreateTicket(context.Background(), NewTicket{Title: "Login issue", Priority: types.PriorityUrgent, Status: types.StatusOpen, CustomerID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.ID != "t9" || ticket.Priority != types.PriorityUrgent || ticket.CustomerID != "u1" {
		t.Fatalf("unexpected ticket %+v", ticket)
	}
}

func TestClient_UploadLogo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v0/company/logo" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file: %v", err)
			return
		}
		defer file.Close()

		content, _ := io.ReadAll(file)
		if header.Filename != "acme.png" || string(content) != "png-bytes" {
			t.Errorf("unexpected upload %s %q", header.Filename, content)
		}

		_, _ = io.WriteString(w, `{"logo_url":"https://cdn/company-logos/1.png"}`)
	}, "tok")

	url, err := c.UploadLogo(context.Background(), "acme.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://cdn/company-logos/1.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestClient_RemoveAgentNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v0/company/agents/a1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	if err := c.RemoveAgent(context.Background(), "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
