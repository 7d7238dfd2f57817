// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/config"
	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/client"
	"github.com/canonical/autocrm/pkg/gate"
	"github.com/canonical/autocrm/pkg/session"
	"github.com/canonical/autocrm/pkg/ticketview"
)

var (
	errNotSignedIn = errors.New("not signed in, run `autocrm login` first")
	errWrongRole   = errors.New("this command is not available for your role")
)

// clientEnv is everything a client command needs, built from AUTOCRM_*
// variables.
type clientEnv struct {
	spec *config.ClientSpec

	auth    *kratos.FrontendClient
	api     *client.Client
	session *session.Store

	stopWatch context.CancelFunc

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "autocrm", "session.yaml")
}

func newClientEnv(ctx context.Context) (*clientEnv, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	spec, err := config.NewClientSpec()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(spec.LogLevel)
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("autocrm-cli", logger)

	sessionFile := spec.SessionFile
	if sessionFile == "" {
		sessionFile = defaultSessionFile()
	}
	tokens := kratos.NewFileTokenStore(sessionFile)

	auth := kratos.NewFrontendClient(spec.AuthEndpoint(), tokens, tracer, monitor, logger)

	api, err := client.NewClient(spec.ServiceURL, spec.ServiceKey, tokens, spec.Timeout, tracer, monitor, logger)
	if err != nil {
		return nil, err
	}

	e := &clientEnv{
		spec:    spec,
		auth:    auth,
		api:     api,
		session: session.NewStore(auth, api, tracer, monitor, logger),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}

	e.session.Initialize(ctx)
	e.watch(ctx)

	return e, nil
}

// watch keeps the session store in step with the authentication service
// for as long as the environment lives.
func (e *clientEnv) watch(ctx context.Context) {
	if e.spec.RefreshInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	e.stopWatch = cancel
	go e.auth.Watch(ctx, e.spec.RefreshInterval)
}

func (e *clientEnv) Close() {
	if e.stopWatch != nil {
		e.stopWatch()
	}
	e.session.Close()
	_ = e.logger.Sync()
}

// require runs the session through the gate the same way a protected page
// would and turns redirects into errors.
func (e *clientEnv) require(role types.Role, path string) error {
	state := e.session.Snapshot()

	d := gate.Authorize(state.Gate(), role, path)
	switch d.Outcome {
	case gate.Allow:
		return nil
	case gate.RedirectLogin:
		if state.Err != nil {
			return fmt.Errorf("%w (%v)", errNotSignedIn, state.Err)
		}
		return errNotSignedIn
	case gate.RedirectHome:
		held := string(state.Role)
		if held == "" {
			held = "no role"
		}
		return fmt.Errorf("%w: requires %s, signed in as %s", errWrongRole, role, held)
	}
	return fmt.Errorf("session is not ready")
}

func (e *clientEnv) ticketView() *ticketview.View {
	return ticketview.NewView(e.api, e.session, e.tracer, e.monitor, e.logger)
}

// withClient builds the client environment, checks the required role and
// runs fn.
func withClient(role types.Role, path string, fn func(cmd *cobra.Command, args []string, e *clientEnv) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.require(role, path); err != nil {
			return err
		}

		return fn(cmd, args, e)
	}
}

// readSecret takes the value of flag or, when empty, a line from stdin.
func readSecret(cmd *cobra.Command, flag, prompt string) (string, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value != "" {
		return value, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", flag, err)
	}

	value = strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("%s is required", flag)
	}
	return value, nil
}
