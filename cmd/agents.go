// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/gate"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage your company's support agents",
}

var listAgentsCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents and pending invites",
	RunE: withClient(types.RoleCompanyAdmin, "/company/agents", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		agents, err := e.api.ListAgents(cmd.Context())
		if err != nil {
			return err
		}
		invites, err := e.api.ListInvites(cmd.Context())
		if err != nil {
			return err
		}

		out := struct {
			Agents  []*types.Agent  `json:"agents" yaml:"agents"`
			Invites []*types.Invite `json:"invites" yaml:"invites"`
		}{agents, invites}

		return render(cmd, out, func(w io.Writer) {
			table(w, "EMAIL\tSINCE\tID", func(w io.Writer) {
				for _, a := range agents {
					fmt.Fprintf(w, "%s\t%s\t%s\n", a.Email, shortTime(a.CreatedAt), a.ID)
				}
			})
			if len(invites) == 0 {
				return
			}
			fmt.Fprintln(w, "\nPending invites:")
			table(w, "EMAIL\tEXPIRES\tTOKEN", func(w io.Writer) {
				for _, i := range invites {
					fmt.Fprintf(w, "%s\t%s\t%s\n", i.Email, shortTime(i.ExpiresAt), i.Token)
				}
			})
		})
	}),
}

var inviteAgentCmd = &cobra.Command{
	Use:   "invite [email]",
	Short: "Invite someone to join your company as an agent",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(types.RoleCompanyAdmin, "/company/agents", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		invite, err := e.api.Invite(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd, invite, func(w io.Writer) {
			fmt.Fprintf(w, "Invite for %s expires %s\n", invite.Email, shortTime(invite.ExpiresAt))
			fmt.Fprintf(w, "They can join with: autocrm agents accept %s\n", invite.Token)
		})
	}),
}

var acceptInviteCmd = &cobra.Command{
	Use:   "accept [token]",
	Short: "Join a company with an invite token",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(gate.RequireAny, "/invites/accept", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		agent, err := e.api.AcceptInvite(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		return render(cmd, agent, func(w io.Writer) {
			fmt.Fprintf(w, "You are now an agent of company %s\n", agent.CompanyID)
		})
	}),
}

var removeAgentCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an agent from your company",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(types.RoleCompanyAdmin, "/company/agents", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		if err := e.api.RemoveAgent(cmd.Context(), args[0]); err != nil {
			return err
		}

		cmd.Printf("Agent %s removed\n", args[0])
		return nil
	}),
}

func init() {
	agentsCmd.AddCommand(listAgentsCmd, inviteAgentCmd, acceptInviteCmd, removeAgentCmd)
	rootCmd.AddCommand(agentsCmd)
}
