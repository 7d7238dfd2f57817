// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/pkg/authentication"
)

const serviceKey = "public-anon-key"

// subjectVerifier accepts any bearer token as the id of its holder.
type subjectVerifier struct{}

func (subjectVerifier) VerifyToken(_ context.Context, token string) (*authentication.Claims, error) {
	return &authentication.Claims{Subject: token}, nil
}

func newTestRouter(t *testing.T, kratosURL string) http.Handler {
	t.Helper()

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("autocrm", logger)

	router, err := NewRouter(
		Config{ServicePublicKey: serviceKey, KratosPublicURL: kratosURL},
		Services{},
		authentication.NewMiddleware(subjectVerifier{}, tracer, monitor, logger),
		identity.NewMiddleware(nil, tracer, monitor, logger),
		nil,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return router
}

func TestRouter_Guards(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		bearer         string
		expectedStatus int
	}{
		{name: "missing api key", method: http.MethodGet, path: "/api/v0/tickets", expectedStatus: http.StatusUnauthorized},
		{name: "wrong api key", method: http.MethodGet, path: "/api/v0/companies", apiKey: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "missing bearer token", method: http.MethodGet, path: "/api/v0/me", apiKey: serviceKey, expectedStatus: http.StatusUnauthorized},
		{name: "webhook needs the api key", method: http.MethodPost, path: "/webhooks/registration", expectedStatus: http.StatusUnauthorized},
		{name: "unknown route", method: http.MethodGet, path: "/api/v0/nothing", apiKey: serviceKey, bearer: "u", expectedStatus: http.StatusNotFound},
	}

	router := newTestRouter(t, "")

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			if test.apiKey != "" {
				req.Header.Set(authentication.APIKeyHeader, test.apiKey)
			}
			if test.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+test.bearer)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", test.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestRouter_KratosProxy(t *testing.T) {
	var gotPath, gotToken string
	kratos := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Session-Token")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"id":"session-1"}`)
	}))
	defer kratos.Close()

	router := newTestRouter(t, kratos.URL)

	req := httptest.NewRequest(http.MethodGet, "/sessions/whoami", nil)
	req.Header.Set("X-Session-Token", "ory_st_abc")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if gotPath != "/sessions/whoami" || gotToken != "ory_st_abc" {
		t.Fatalf("unexpected upstream request path=%q token=%q", gotPath, gotToken)
	}
}

func TestNewKratosProxyRejectsBadURL(t *testing.T) {
	if _, err := newKratosProxy("not a url", logging.NewNoopLogger()); err == nil {
		t.Fatal("expected an error")
	}
}
