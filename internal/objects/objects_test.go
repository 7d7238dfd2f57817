// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package objects

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

func TestStorePublicURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "derived from endpoint",
			cfg:      Config{Endpoint: "minio.internal:9000", UseSSL: false},
			expected: "http://minio.internal:9000/company-logos/1700000000000.png",
		},
		{
			name:     "scheme in endpoint is ignored",
			cfg:      Config{Endpoint: "https://s3.example.com", UseSSL: true},
			expected: "https://s3.example.com/company-logos/1700000000000.png",
		},
		{
			name:     "explicit public url with prefix",
			cfg:      Config{Endpoint: "minio:9000", PublicURL: "https://cdn.example.com/storage/"},
			expected: "https://cdn.example.com/storage/company-logos/1700000000000.png",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logger := logging.NewNoopLogger()
			s, err := NewStore(test.cfg, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("autocrm", logger), logger)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := s.PublicURL("company-logos", "1700000000000.png"); got != test.expected {
				t.Fatalf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestNoopStore(t *testing.T) {
	s := NewNoopStore()

	err := s.Upload(context.Background(), "company-logos", "a.png", strings.NewReader("x"), 1, "image/png")
	if !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
	if s.PublicURL("company-logos", "a.png") != "" {
		t.Fatal("expected empty public url")
	}
}
