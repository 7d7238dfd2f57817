// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/db"
	"github.com/canonical/autocrm/internal/types"
)

var ticketColumns = []string{
	"id", "ticket_number", "title", "description", "status", "priority", "category",
	"customer_id", "company_id", "assignee_id", "created_at", "updated_at", "resolved_at", "closed_at",
}

// ticketNumber draws the next value of the ticket sequence, e.g. TKT-2026-000042.
var ticketNumber = sq.Expr("'TKT-' || to_char(now(), 'YYYY') || '-' || lpad(nextval('ticket_number_seq')::text, 6, '0')")

func scanTicket(row sq.RowScanner) (*types.Ticket, error) {
	var t types.Ticket
	err := row.Scan(
		&t.ID, &t.TicketNumber, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Category,
		&t.CustomerID, &t.CompanyID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt, &t.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scoped(q sq.SelectBuilder, scope types.TicketScope) sq.SelectBuilder {
	if scope.CustomerID != "" {
		q = q.Where(sq.Eq{"customer_id": scope.CustomerID})
	}
	if scope.CompanyID != "" {
		q = q.Where(sq.Eq{"company_id": scope.CompanyID})
	}
	return q
}

// likePattern builds a substring pattern, escaping the ILIKE wildcards of the term.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func listTicketsQuery(sb sq.StatementBuilderType, scope types.TicketScope, filter types.TicketFilter) sq.SelectBuilder {
	q := scoped(sb.Select(ticketColumns...).From("tickets"), scope)

	if filter.Status != "" && filter.Status != types.FilterAll {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Priority != "" && filter.Priority != types.FilterAll {
		q = q.Where(sq.Eq{"priority": filter.Priority})
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := likePattern(term)
		q = q.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return q.OrderBy("created_at DESC").Limit(db.Limit(filter.Limit))
}

func (s *Storage) ListTickets(ctx context.Context, scope types.TicketScope, filter types.TicketFilter) ([]*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTickets")
	defer span.End()

	rows, err := listTicketsQuery(s.db.Statement(ctx), scope, filter).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets := make([]*types.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tickets, nil
}

func (s *Storage) CreateTicket(ctx context.Context, t *types.Ticket) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTicket")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tickets").
		Columns("id", "ticket_number", "title", "description", "status", "priority", "category", "customer_id", "company_id").
		Values(id.String(), ticketNumber, t.Title, t.Description, t.Status, t.Priority, t.Category, t.CustomerID, t.CompanyID).
		Suffix("RETURNING " + strings.Join(ticketColumns, ", ")).
		QueryRowContext(ctx)

	created, err := scanTicket(row)
	if err != nil {
		return nil, writeError(err, "insert ticket")
	}

	return created, nil
}

func (s *Storage) GetTicket(ctx context.Context, id string, scope types.TicketScope) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTicket")
	defer span.End()

	row := scoped(s.db.Statement(ctx).Select(ticketColumns...).From("tickets"), scope).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	t, err := scanTicket(row)
	if err != nil {
		return nil, readError(err, "get ticket")
	}

	return t, nil
}

func updateTicketQuery(sb sq.StatementBuilderType, id string, update types.TicketUpdate) sq.UpdateBuilder {
	q := sb.Update("tickets").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if update.Status != nil {
		q = q.Set("status", *update.Status)
		switch *update.Status {
		case types.StatusResolved:
			q = q.Set("resolved_at", sq.Expr("now()"))
		case types.StatusClosed:
			q = q.Set("closed_at", sq.Expr("now()"))
		}
	}
	if update.Priority != nil {
		q = q.Set("priority", *update.Priority)
	}
	if update.AssigneeID != nil {
		if *update.AssigneeID == "" {
			q = q.Set("assignee_id", nil)
		} else {
			q = q.Set("assignee_id", *update.AssigneeID)
		}
	}

	return q.Suffix("RETURNING " + strings.Join(ticketColumns, ", "))
}

// UpdateTicket applies the non nil fields of update and returns the stored row.
func (s *Storage) UpdateTicket(ctx context.Context, id string, update types.TicketUpdate) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTicket")
	defer span.End()

	row := updateTicketQuery(s.db.Statement(ctx), id, update).QueryRowContext(ctx)

	t, err := scanTicket(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, writeError(err, "update ticket")
		}
		return nil, readError(err, "update ticket")
	}

	return t, nil
}

// CountTickets returns the open workload of a company: tickets not closed
// count as active, closed ones as resolved.
func (s *Storage) CountTickets(ctx context.Context, companyID string) (int, int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountTickets")
	defer span.End()

	var active, resolved int
	err := s.db.Statement(ctx).
		Select(
			"COUNT(*) FILTER (WHERE status <> 'closed')",
			"COUNT(*) FILTER (WHERE status = 'closed')",
		).
		From("tickets").
		Where(sq.Eq{"company_id": companyID}).
		QueryRowContext(ctx).
		Scan(&active, &resolved)

	if err != nil {
		return 0, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return active, resolved, nil
}

func (s *Storage) ListMessages(ctx context.Context, ticketID string) ([]*types.TicketMessage, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMessages")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "ticket_id", "sender_id", "content", "is_agent", "created_at").
		From("ticket_messages").
		Where(sq.Eq{"ticket_id": ticketID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*types.TicketMessage, 0)
	for rows.Next() {
		var m types.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.SenderID, &m.Content, &m.IsAgent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}

func (s *Storage) AddMessage(ctx context.Context, m *types.TicketMessage) (*types.TicketMessage, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMessage")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message ID: %w", err)
	}

	var created types.TicketMessage
	err = s.db.Statement(ctx).
		Insert("ticket_messages").
		Columns("id", "ticket_id", "sender_id", "content", "is_agent").
		Values(id.String(), m.TicketID, m.SenderID, m.Content, m.IsAgent).
		Suffix("RETURNING id, ticket_id, sender_id, content, is_agent, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TicketID, &created.SenderID, &created.Content, &created.IsAgent, &created.CreatedAt)

	if err != nil {
		return nil, writeError(err, "insert message")
	}

	return &created, nil
}

func (s *Storage) ListNotes(ctx context.Context, ticketID string) ([]*types.TicketNote, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotes")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "ticket_id", "author_id", "content", "is_private", "created_at").
		From("ticket_notes").
		Where(sq.Eq{"ticket_id": ticketID}).
		OrderBy("created_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*types.TicketNote, 0)
	for rows.Next() {
		var n types.TicketNote
		if err := rows.Scan(&n.ID, &n.TicketID, &n.AuthorID, &n.Content, &n.IsPrivate, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notes, nil
}

func (s *Storage) AddNote(ctx context.Context, n *types.TicketNote) (*types.TicketNote, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddNote")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate note ID: %w", err)
	}

	var created types.TicketNote
	err = s.db.Statement(ctx).
		Insert("ticket_notes").
		Columns("id", "ticket_id", "author_id", "content", "is_private").
		Values(id.String(), n.TicketID, n.AuthorID, n.Content, n.IsPrivate).
		Suffix("RETURNING id, ticket_id, author_id, content, is_private, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TicketID, &created.AuthorID, &created.Content, &created.IsPrivate, &created.CreatedAt)

	if err != nil {
		return nil, writeError(err, "insert note")
	}

	return &created, nil
}
