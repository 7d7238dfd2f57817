// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

const appID = "autocrm"

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.log("sys_startup", "autocrm is starting")
}

func (s *SecurityLogger) SystemShutdown() {
	s.log("sys_shutdown", "autocrm is shutting down")
}

func (s *SecurityLogger) AuthnLoginSuccess(user string) {
	s.log(fmt.Sprintf("authn_login_success:%s", user), "user signed in", zap.String("user", user))
}

func (s *SecurityLogger) AuthnLoginFail(user string) {
	s.log(fmt.Sprintf("authn_login_fail:%s", user), "sign in failed", zap.String("user", user))
}

func (s *SecurityLogger) AuthzFailure(user, resource string) {
	s.log(
		fmt.Sprintf("authz_fail:%s,%s", user, resource),
		"access denied",
		zap.String("user", user),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) AdminAction(user, action, resource string) {
	s.log(
		fmt.Sprintf("authz_admin:%s,%s", user, action),
		"administrative action",
		zap.String("user", user),
		zap.String("action", action),
		zap.String("resource", resource),
	)
}

func (s *SecurityLogger) log(event, description string, fields ...zap.Field) {
	fields = append(fields, zap.String("appid", appID), zap.String("event", event))
	s.l.Warn(description, fields...)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
