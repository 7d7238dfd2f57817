// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			l := NewLogger(level)
			if l.Security() == nil {
				t.Fatal("expected a security logger")
			}
		})
	}
}

func TestNoopLoggerIsSilent(t *testing.T) {
	l := NewNoopLogger()

	l.Infof("hello %s", "world")
	l.Security().SystemStartup()
	l.Security().AuthzFailure("user-1", "ticket:1")
	l.Security().AdminAction("user-1", "invite_agent", "company:1")

	if err := l.Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}

var _ LoggerInterface = (*Logger)(nil)
