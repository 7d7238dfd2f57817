// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	envFile      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "autocrm",
	Short:         "AutoCRM support desk",
	Long:          `AutoCRM backend and command line client for customers, agents and company admins.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatText, "Output format (text, json or yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional file with AUTOCRM_* variables")
}
