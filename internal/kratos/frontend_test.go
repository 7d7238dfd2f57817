// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

const (
	testToken    = "ory_st_valid"
	testPassword = "correct-horse"
)

type fakeKratos struct {
	verified bool

	mu         sync.Mutex
	loggedOut  []string
	whoamiHits int
}

func (f *fakeKratos) identity() map[string]interface{} {
	return map[string]interface{}{
		"id":         "user-1",
		"schema_id":  "default",
		"schema_url": "http://kratos/schemas/default",
		"traits":     map[string]interface{}{"email": "ada@example.com"},
		"metadata_public": map[string]interface{}{
			"role": "agent",
		},
		"verifiable_addresses": []map[string]interface{}{
			{
				"value":    "ada@example.com",
				"verified": f.verified,
				"via":      "email",
				"status":   "completed",
			},
		},
	}
}

func (f *fakeKratos) session() map[string]interface{} {
	return map[string]interface{}{
		"id":       "session-1",
		"active":   true,
		"identity": f.identity(),
	}
}

func flow(id string) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"type":        "api",
		"expires_at":  "2030-01-01T00:00:00Z",
		"issued_at":   "2026-01-01T00:00:00Z",
		"request_url": "http://kratos/self-service/login/api",
		"state":       "choose_method",
		"ui": map[string]interface{}{
			"action": "http://kratos/self-service/login?flow=" + id,
			"method": "POST",
			"nodes":  []interface{}{},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeKratos) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /self-service/login/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, flow("login-flow"))
	})

	mux.HandleFunc("POST /self-service/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)

		if body["password"] != testPassword {
			f := flow("login-flow")
			f["ui"].(map[string]interface{})["messages"] = []map[string]interface{}{
				{"id": 4000006, "type": "error", "text": "The provided credentials are invalid."},
			}
			writeJSON(w, http.StatusBadRequest, f)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"session":       f.session(),
			"session_token": testToken,
		})
	})

	mux.HandleFunc("GET /sessions/whoami", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.whoamiHits++
		f.mu.Unlock()

		if r.Header.Get("X-Session-Token") != testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error": map[string]interface{}{"code": 401, "message": "No valid session credentials found in the request."},
			})
			return
		}
		writeJSON(w, http.StatusOK, f.session())
	})

	mux.HandleFunc("DELETE /self-service/logout/api", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.loggedOut = append(f.loggedOut, body["session_token"])
		f.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func newTestFrontend(t *testing.T, fake *fakeKratos, tokens TokenStoreInterface) *FrontendClient {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	logger := logging.NewNoopLogger()
	return NewFrontendClient(srv.URL, tokens, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm", logger), logger)
}

func TestFrontendClient_SignIn(t *testing.T) {
	tests := []struct {
		name          string
		verified      bool
		password      string
		expectedErr   error
		expectMessage string
		expectToken   string
		expectSession bool
	}{
		{
			name:          "verified identity",
			verified:      true,
			password:      testPassword,
			expectToken:   testToken,
			expectSession: true,
		},
		{
			name:          "unverified identity still signs in",
			verified:      false,
			password:      testPassword,
			expectedErr:   ErrEmailNotConfirmed,
			expectToken:   testToken,
			expectSession: true,
		},
		{
			name:          "wrong password",
			verified:      true,
			password:      "nope",
			expectMessage: "The provided credentials are invalid.",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			c := newTestFrontend(t, &fakeKratos{verified: test.verified}, tokens)

			var events []AuthEvent
			c.OnAuthStateChange(func(e AuthEvent, _ *Session) { events = append(events, e) })

			session, err := c.SignIn(context.Background(), "ada@example.com", test.password)

			if test.expectedErr != nil && !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expectMessage != "" {
				if err == nil || err.Error() != test.expectMessage {
					t.Fatalf("expected message %q, got %v", test.expectMessage, err)
				}
			}
			if test.expectedErr == nil && test.expectMessage == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if test.expectSession != (session != nil) {
				t.Fatalf("expected session presence %v, got %v", test.expectSession, session)
			}

			token, _ := tokens.Load()
			if token != test.expectToken {
				t.Fatalf("expected stored token %q, got %q", test.expectToken, token)
			}

			if !test.expectSession {
				if len(events) != 0 {
					t.Fatalf("expected no events, got %v", events)
				}
				return
			}

			if session.UserID != "user-1" || session.Email != "ada@example.com" {
				t.Fatalf("unexpected session %+v", session)
			}
			if session.MetadataRole() != "agent" {
				t.Fatalf("expected metadata role agent, got %q", session.MetadataRole())
			}
			if len(events) != 1 || events[0] != EventSignedIn {
				t.Fatalf("expected a single SIGNED_IN event, got %v", events)
			}
		})
	}
}

func TestFrontendClient_GetSession(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		expectedErr error
		expectClear bool
	}{
		{name: "no stored token", stored: "", expectedErr: ErrNoSession},
		{name: "valid token", stored: testToken},
		{name: "revoked token is forgotten", stored: "ory_st_revoked", expectedErr: ErrNoSession, expectClear: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			_ = tokens.Save(test.stored)

			c := newTestFrontend(t, &fakeKratos{verified: true}, tokens)

			session, err := c.GetSession(context.Background())
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}
			if test.expectedErr == nil && session.UserID != "user-1" {
				t.Fatalf("unexpected session %+v", session)
			}

			token, _ := tokens.Load()
			if test.expectClear && token != "" {
				t.Fatalf("expected stale token to be cleared, got %q", token)
			}
		})
	}
}

func TestFrontendClient_SignOut(t *testing.T) {
	fake := &fakeKratos{verified: true}
	tokens := NewFileTokenStore(filepath.Join(t.TempDir(), "session.yaml"))
	_ = tokens.Save(testToken)

	c := newTestFrontend(t, fake, tokens)

	var events []AuthEvent
	unsubscribe := c.OnAuthStateChange(func(e AuthEvent, _ *Session) { events = append(events, e) })

	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.loggedOut) != 1 || fake.loggedOut[0] != testToken {
		t.Fatalf("expected the token to be revoked, got %v", fake.loggedOut)
	}

	token, _ := tokens.Load()
	if token != "" {
		t.Fatalf("expected token to be cleared, got %q", token)
	}

	if len(events) != 1 || events[0] != EventSignedOut {
		t.Fatalf("expected a single SIGNED_OUT event, got %v", events)
	}

	unsubscribe()
	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("listener should not run after unsubscribe, got %v", events)
	}
}

func TestFrontendClient_UpdatePasswordWithoutSession(t *testing.T) {
	c := newTestFrontend(t, &fakeKratos{}, NewMemoryTokenStore())

	if err := c.UpdatePassword(context.Background(), "new-password"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestFrontendClient_Refresh(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		expect []AuthEvent
	}{
		{name: "nothing stored", stored: "", expect: nil},
		{name: "session still valid", stored: testToken, expect: []AuthEvent{EventTokenRefreshed}},
		{name: "session expired", stored: "ory_st_expired", expect: []AuthEvent{EventSignedOut}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens := NewMemoryTokenStore()
			_ = tokens.Save(test.stored)
			c := newTestFrontend(t, &fakeKratos{verified: true}, tokens)

			var events []AuthEvent
			c.OnAuthStateChange(func(e AuthEvent, _ *Session) { events = append(events, e) })

			c.refresh(context.Background())

			if len(events) != len(test.expect) {
				t.Fatalf("expected events %v, got %v", test.expect, events)
			}
			for i := range events {
				if events[i] != test.expect[i] {
					t.Fatalf("expected events %v, got %v", test.expect, events)
				}
			}
		})
	}
}

func TestFrontendClient_Watch(t *testing.T) {
	tokens := NewMemoryTokenStore()
	_ = tokens.Save(testToken)
	c := newTestFrontend(t, &fakeKratos{verified: true}, tokens)

	events := make(chan AuthEvent, 16)
	c.OnAuthStateChange(func(e AuthEvent, _ *Session) { events <- e })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Watch(ctx, 10*time.Millisecond)
	}()

	expectEvent := func(expected AuthEvent) {
		t.Helper()
		select {
		case e := <-events:
			if e != expected {
				t.Fatalf("expected %s, got %s", expected, e)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", expected)
		}
	}

	expectEvent(EventTokenRefreshed)

	_ = tokens.Save("ory_st_expired")
	for {
		select {
		case e := <-events:
			if e == EventTokenRefreshed {
				continue
			}
			if e != EventSignedOut {
				t.Fatalf("expected %s, got %s", EventSignedOut, e)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", EventSignedOut)
		}
		break
	}

	if token, _ := tokens.Load(); token != "" {
		t.Fatalf("expected the stale token to be cleared, got %q", token)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after the context was cancelled")
	}
}

func TestFlowErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect string
	}{
		{
			name:   "error reason wins",
			body:   `{"error":{"message":"generic","reason":"specific reason"}}`,
			expect: "specific reason",
		},
		{
			name:   "error message",
			body:   `{"error":{"message":"generic"}}`,
			expect: "generic",
		},
		{
			name:   "node message",
			body:   `{"ui":{"nodes":[{"messages":[]},{"messages":[{"text":"password too short"}]}]}}`,
			expect: "password too short",
		},
		{
			name:   "nothing usable",
			body:   `{"ui":{"nodes":[]}}`,
			expect: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var body flowErrorBody
			if err := json.Unmarshal([]byte(test.body), &body); err != nil {
				t.Fatalf("invalid fixture: %v", err)
			}
			if msg := body.message(); msg != test.expect {
				t.Fatalf("expected %q, got %q", test.expect, msg)
			}
		})
	}
}
