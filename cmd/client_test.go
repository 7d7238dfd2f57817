// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/canonical/autocrm/internal/config"
	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

func TestClientEnv_Watch(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected bool
	}{
		{name: "disabled", interval: 0},
		{name: "revoked session signs out", interval: 10 * time.Millisecond, expected: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"code":401,"message":"No valid session credentials found in the request."}}`))
			}))
			defer srv.Close()

			logger := logging.NewNoopLogger()
			tokens := kratos.NewMemoryTokenStore()
			_ = tokens.Save("ory_st_revoked")

			e := &clientEnv{
				spec:   &config.ClientSpec{RefreshInterval: test.interval},
				auth:   kratos.NewFrontendClient(srv.URL, tokens, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm-cli", logger), logger),
				logger: logger,
			}

			signedOut := make(chan struct{}, 1)
			e.auth.OnAuthStateChange(func(event kratos.AuthEvent, _ *kratos.Session) {
				if event == kratos.EventSignedOut {
					select {
					case signedOut <- struct{}{}:
					default:
					}
				}
			})

			e.watch(context.Background())

			if !test.expected {
				if e.stopWatch != nil {
					t.Fatal("expected no watcher for a zero interval")
				}
				return
			}
			defer e.stopWatch()

			select {
			case <-signedOut:
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for the session to be signed out")
			}
		})
	}
}
