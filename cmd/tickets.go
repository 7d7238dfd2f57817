// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/gate"
	"github.com/canonical/autocrm/pkg/ticketview"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Work with support tickets",
}

var listTicketsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tickets you can see, newest first",
	RunE: withClient(gate.RequireAny, "/tickets", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetUint64("limit")

		view := e.ticketView()
		defer view.Close()

		filter := types.TicketFilter{Status: status, Priority: priority, Search: search, Limit: limit}
		if err := view.Load(cmd.Context(), filter); err != nil {
			return fmt.Errorf("failed to load tickets: %w", err)
		}

		snapshot := view.Snapshot()
		return render(cmd, snapshot.Tickets, func(w io.Writer) {
			if snapshot.State == ticketview.Empty {
				fmt.Fprintln(w, "No tickets found")
				return
			}
			renderTickets(w, snapshot.Tickets)
		})
	}),
}

var createTicketCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new ticket",
	RunE: withClient(types.RoleCustomer, "/tickets/create", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		category, _ := cmd.Flags().GetString("category")
		companyID, _ := cmd.Flags().GetString("company")

		view := e.ticketView()
		defer view.Close()

		ticket, err := view.Create(cmd.Context(), ticketview.Form{
			Title:       title,
			Description: description,
			Priority:    types.Priority(priority),
			Category:    category,
			CompanyID:   companyID,
		})
		if err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		return render(cmd, ticket, func(w io.Writer) {
			fmt.Fprintf(w, "Created %s (%s)\n", ticket.TicketNumber, ticket.ID)
		})
	}),
}

type ticketDetails struct {
	Ticket   *types.Ticket          `json:"ticket" yaml:"ticket"`
	Messages []*types.TicketMessage `json:"messages" yaml:"messages"`
	Notes    []*types.TicketNote    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

var showTicketCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a ticket with its conversation",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(gate.RequireAny, "/tickets/:id", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		ctx := cmd.Context()

		ticket, err := e.api.GetTicket(ctx, args[0])
		if err != nil {
			return err
		}

		details := ticketDetails{Ticket: ticket}
		if details.Messages, err = e.api.ListMessages(ctx, ticket.ID); err != nil {
			return err
		}
		if e.session.Snapshot().Role.Staff() {
			if details.Notes, err = e.api.ListNotes(ctx, ticket.ID); err != nil {
				return err
			}
		}

		return render(cmd, details, func(w io.Writer) {
			fmt.Fprintf(w, "%s  %s\n", ticket.TicketNumber, ticket.Title)
			fmt.Fprintf(w, "Status: %s  Priority: %s  Opened: %s\n\n", ticket.Status, ticket.Priority, shortTime(ticket.CreatedAt))
			fmt.Fprintf(w, "%s\n", ticket.Description)

			for _, m := range details.Messages {
				who := "customer"
				if m.IsAgent {
					who = "agent"
				}
				fmt.Fprintf(w, "\n[%s] %s:\n%s\n", shortTime(m.CreatedAt), who, m.Content)
			}
			for _, n := range details.Notes {
				fmt.Fprintf(w, "\n[%s] note by %s:\n%s\n", shortTime(n.CreatedAt), n.AuthorID, n.Content)
			}
		})
	}),
}

var statusTicketCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Move a ticket to another status",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(gate.RequireAny, "/agent/queue", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		view := e.ticketView()
		defer view.Close()

		if err := view.Load(cmd.Context(), types.TicketFilter{}); err != nil {
			return fmt.Errorf("failed to load tickets: %w", err)
		}

		ticket, err := view.ChangeStatus(cmd.Context(), args[0], types.Status(args[1]))
		if err != nil {
			return err
		}

		return render(cmd, ticket, func(w io.Writer) {
			fmt.Fprintf(w, "%s is now %s\n", ticket.TicketNumber, ticket.Status)
		})
	}),
}

var replyTicketCmd = &cobra.Command{
	Use:   "reply [id] [message]",
	Short: "Add a message to a ticket conversation",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(gate.RequireAny, "/tickets/:id", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		m, err := e.api.AddMessage(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		return render(cmd, m, func(w io.Writer) {
			fmt.Fprintf(w, "Message %s added\n", m.ID)
		})
	}),
}

var noteTicketCmd = &cobra.Command{
	Use:   "note [id] [note]",
	Short: "Add an internal note to a ticket",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(gate.RequireAny, "/agent/tickets/:id", func(cmd *cobra.Command, args []string, e *clientEnv) error {
		if !e.session.Snapshot().Role.Staff() {
			return fmt.Errorf("%w: notes are for agents and company admins", errWrongRole)
		}

		public, _ := cmd.Flags().GetBool("public")

		n, err := e.api.AddNote(cmd.Context(), args[0], args[1], !public)
		if err != nil {
			return err
		}

		return render(cmd, n, func(w io.Writer) {
			fmt.Fprintf(w, "Note %s added\n", n.ID)
		})
	}),
}

func renderTickets(w io.Writer, tickets []*types.Ticket) {
	table(w, "NUMBER\tSTATUS\tPRIORITY\tTITLE\tCREATED\tID", func(w io.Writer) {
		for _, t := range tickets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", orDash(t.TicketNumber), t.Status, t.Priority, t.Title, shortTime(t.CreatedAt), t.ID)
		}
	})
}

func init() {
	listTicketsCmd.Flags().String("status", types.FilterAll, "Status filter, all for every status")
	listTicketsCmd.Flags().String("priority", types.FilterAll, "Priority filter, all for every priority")
	listTicketsCmd.Flags().String("search", "", "Case-insensitive text searched in title and description")
	listTicketsCmd.Flags().Uint64("limit", 0, "Maximum number of tickets, server default when 0")

	createTicketCmd.Flags().String("title", "", "Short summary")
	createTicketCmd.Flags().String("description", "", "What happened")
	createTicketCmd.Flags().String("priority", string(types.PriorityNormal), "low, normal, medium, high, urgent or critical")
	createTicketCmd.Flags().String("category", "", "Optional category")
	createTicketCmd.Flags().String("company", "", "ID of the company the ticket is filed with")
	_ = createTicketCmd.MarkFlagRequired("title")
	_ = createTicketCmd.MarkFlagRequired("description")

	noteTicketCmd.Flags().Bool("public", false, "Make the note visible outside the support staff")

	ticketsCmd.AddCommand(listTicketsCmd, createTicketCmd, showTicketCmd, statusTicketCmd, replyTicketCmd, noteTicketCmd)
	rootCmd.AddCommand(ticketsCmd)
}
