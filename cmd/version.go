// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Long:  `Get the application's version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := struct {
			Version string `json:"version" yaml:"version"`
		}{version.Version}

		return render(cmd, out, func(w io.Writer) {
			fmt.Fprintf(w, "App Version: %s\n", version.Version)
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
