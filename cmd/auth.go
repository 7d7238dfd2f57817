// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/gate"
	"github.com/canonical/autocrm/pkg/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		email, _ := cmd.Flags().GetString("email")
		password, err := readSecret(cmd, "password", "Password: ")
		if err != nil {
			return err
		}

		if _, err := e.session.SignIn(cmd.Context(), email, password); err != nil {
			return err
		}

		return renderSession(cmd, e.session.Snapshot())
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account as a customer or a company admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		password, err := readSecret(cmd, "password", "Password: ")
		if err != nil {
			return err
		}

		if _, err := e.session.SignUp(cmd.Context(), email, password, types.Role(role)); err != nil {
			return err
		}

		return renderSession(cmd, e.session.Snapshot())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.SignOut(cmd.Context()); err != nil {
			e.logger.Warnf("remote sign out failed: %v", err)
		}

		cmd.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user and role",
	RunE: withClient(gate.RequireAny, "/profile", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		return renderSession(cmd, e.session.Snapshot())
	}),
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Reset or change your password",
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Send a recovery code to an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newClientEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		email, _ := cmd.Flags().GetString("email")
		if err := e.session.ResetPassword(cmd.Context(), email); err != nil {
			return err
		}

		cmd.Printf("Recovery code sent to %s\n", email)
		return nil
	},
}

var passwordUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change the password of the signed in user",
	RunE: withClient(gate.RequireAny, "/profile", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		password, err := readSecret(cmd, "password", "New password: ")
		if err != nil {
			return err
		}

		if err := e.session.UpdatePassword(cmd.Context(), password); err != nil {
			return err
		}

		cmd.Println("Password updated")
		return nil
	}),
}

func renderSession(cmd *cobra.Command, s session.State) error {
	return render(cmd, s, func(w io.Writer) {
		fmt.Fprintf(w, "User:  %s\n", orDash(s.UserID))
		fmt.Fprintf(w, "Email: %s\n", orDash(s.Email))
		fmt.Fprintf(w, "Role:  %s\n", orDash(string(s.Role)))
		fmt.Fprintf(w, "Home:  %s\n", gate.HomeFor(s.Role))
	})
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password, read from stdin when empty")
	_ = loginCmd.MarkFlagRequired("email")

	signupCmd.Flags().String("email", "", "Account email")
	signupCmd.Flags().String("password", "", "Account password, read from stdin when empty")
	signupCmd.Flags().String("role", string(types.RoleCustomer), "customer or company_admin")
	_ = signupCmd.MarkFlagRequired("email")

	passwordResetCmd.Flags().String("email", "", "Account email")
	_ = passwordResetCmd.MarkFlagRequired("email")
	passwordUpdateCmd.Flags().String("password", "", "New password, read from stdin when empty")

	passwordCmd.AddCommand(passwordResetCmd, passwordUpdateCmd)
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd, passwordCmd)
}
