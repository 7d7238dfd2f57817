// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/migrations"
)

var errPendingMigrations = errors.New("migrations are pending")

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down [version]|status|check]",
	Short: "Run database migrations",
	Long: `Apply, roll back or inspect the AutoCRM schema migrations.

Without arguments the pending migrations are applied. "down" rolls back the
latest migration, or every migration above the given version. "check" exits
with an error while migrations are pending.`,
	Args: migrateArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("dsn")
		if dsn == "" {
			dsn = os.Getenv("DSN")
		}
		if dsn == "" {
			return errors.New("a DSN is required, pass --dsn or set DSN")
		}

		provider, closeDB, err := newMigrationProvider(cmd.Context(), dsn, outputFormat != formatText)
		if err != nil {
			return err
		}
		defer closeDB()

		action := "up"
		if len(args) > 0 {
			action = args[0]
		}

		switch action {
		case "down":
			target := int64(-1)
			if len(args) == 2 {
				target, _ = strconv.ParseInt(args[1], 10, 64)
			}
			return migrateDown(cmd, provider, target)
		case "status":
			return migrationStatus(cmd, provider)
		case "check":
			return migrationCheck(cmd, provider)
		default:
			return migrateUp(cmd, provider)
		}
	},
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "status", "check":
		if len(args) > 1 {
			return fmt.Errorf("%q takes no version", args[0])
		}
	case "down":
		if len(args) == 2 {
			if v, err := strconv.ParseInt(args[1], 10, 64); err != nil || v < 0 {
				return fmt.Errorf("invalid version number: %q", args[1])
			}
		}
	default:
		return fmt.Errorf("unknown migration action %q", args[0])
	}

	return nil
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string, defaults to $DSN")

	rootCmd.AddCommand(migrateCmd)
}

func newMigrationProvider(ctx context.Context, dsn string, quiet bool) (*goose.Provider, func(), error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid DSN: %w", err)
	}

	db := stdlib.OpenDB(*config)
	closeDB := func() { _ = db.Close() }

	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("database is not reachable: %w", err)
	}

	provider, err := migrationProvider(db, quiet)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return provider, closeDB, nil
}

func migrationProvider(db *sql.DB, quiet bool) (*goose.Provider, error) {
	var opts []goose.ProviderOption
	if quiet {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return provider, nil
}

type migrationStep struct {
	Version   int64  `json:"version" yaml:"version"`
	Source    string `json:"source" yaml:"source"`
	Direction string `json:"direction" yaml:"direction"`
	Duration  string `json:"duration" yaml:"duration"`
}

type migrationState struct {
	Version   int64      `json:"version" yaml:"version"`
	Source    string     `json:"source" yaml:"source"`
	Applied   bool       `json:"applied" yaml:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
}

type migrationCheckResult struct {
	Status  string `json:"status" yaml:"status"`
	Version int64  `json:"version" yaml:"version"`
}

func steps(results []*goose.MigrationResult) []migrationStep {
	out := make([]migrationStep, 0, len(results))
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		out = append(out, migrationStep{
			Version:   r.Source.Version,
			Source:    r.Source.Path,
			Direction: r.Direction,
			Duration:  r.Duration.Round(time.Millisecond).String(),
		})
	}
	return out
}

func renderSteps(cmd *cobra.Command, results []*goose.MigrationResult, none string) error {
	applied := steps(results)

	return render(cmd, applied, func(w io.Writer) {
		if len(applied) == 0 {
			fmt.Fprintln(w, none)
			return
		}
		table(w, "VERSION\tDIRECTION\tDURATION\tSOURCE", func(w io.Writer) {
			for _, s := range applied {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Direction, s.Duration, s.Source)
			}
		})
	})
}

func migrateUp(cmd *cobra.Command, provider *goose.Provider) error {
	results, err := provider.Up(cmd.Context())
	if err != nil {
		return err
	}
	return renderSteps(cmd, results, "No pending migrations")
}

// migrateDown rolls back one migration, or down to target when it is not
// negative.
func migrateDown(cmd *cobra.Command, provider *goose.Provider, target int64) error {
	if target >= 0 {
		results, err := provider.DownTo(cmd.Context(), target)
		if err != nil {
			return err
		}
		return renderSteps(cmd, results, "Nothing to roll back")
	}

	result, err := provider.Down(cmd.Context())
	if err != nil {
		return err
	}
	return renderSteps(cmd, []*goose.MigrationResult{result}, "Nothing to roll back")
}

func migrationStatus(cmd *cobra.Command, provider *goose.Provider) error {
	statuses, err := provider.Status(cmd.Context())
	if err != nil {
		return err
	}

	states := make([]migrationState, 0, len(statuses))
	for _, s := range statuses {
		state := migrationState{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		}
		if state.Applied {
			at := s.AppliedAt
			state.AppliedAt = &at
		}
		states = append(states, state)
	}

	return render(cmd, states, func(w io.Writer) {
		table(w, "VERSION\tAPPLIED AT\tSOURCE", func(w io.Writer) {
			for _, s := range states {
				appliedAt := "pending"
				if s.AppliedAt != nil {
					appliedAt = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, appliedAt, s.Source)
			}
		})
	})
}

func migrationCheck(cmd *cobra.Command, provider *goose.Provider) error {
	ctx := cmd.Context()

	pending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the schema version: %w", err)
	}

	result := migrationCheckResult{Status: "ok", Version: current}
	if pending {
		result.Status = "pending"
	}

	if err := render(cmd, result, func(w io.Writer) {
		fmt.Fprintf(w, "Schema version %d, %s\n", current, result.Status)
	}); err != nil {
		return err
	}

	if pending {
		return fmt.Errorf("%w: current version %d", errPendingMigrations, current)
	}
	return nil
}
