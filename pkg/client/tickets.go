// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/canonical/autocrm/internal/types"
)

// NewTicket is the ticket creation form.
type NewTicket struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    types.Priority `json:"priority"`
	Status      types.Status   `json:"status,omitempty"`
	Category    string         `json:"category,omitempty"`
	CompanyID   string         `json:"company_id,omitempty"`
	CustomerID  string         `json:"customer_id,omitempty"`
}

type contentRequest struct {
	Content   string `json:"content"`
	IsPrivate *bool  `json:"is_private,omitempty"`
}

// ticketQuery encodes the list filters the way the API expects them. Empty
// and "all" filters are left out.
func ticketQuery(filter types.TicketFilter) (url.Values, error) {
	query := url.Values{}

	params := []struct {
		name  string
		value interface{}
		skip  bool
	}{
		{"status", filter.Status, filter.Status == "" || filter.Status == types.FilterAll},
		{"priority", filter.Priority, filter.Priority == "" || filter.Priority == types.FilterAll},
		{"search", filter.Search, filter.Search == ""},
		{"limit", int(filter.Limit), filter.Limit == 0},
	}

	for _, p := range params {
		if p.skip {
			continue
		}

		frag, err := runtime.StyleParamWithLocation("form", true, p.name, runtime.ParamLocationQuery, p.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s filter: %w", p.name, err)
		}

		parsed, err := url.ParseQuery(frag)
		if err != nil {
			return nil, fmt.Errorf("invalid %s filter: %w", p.name, err)
		}

		for k, vs := range parsed {
			for _, v := range vs {
				query.Add(k, v)
			}
		}
	}

	return query, nil
}

func (c *Client) ListTickets(ctx context.Context, filter types.TicketFilter) ([]*types.Ticket, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListTickets")
	defer span.End()

	query, err := ticketQuery(filter)
	if err != nil {
		return nil, err
	}

	tickets := make([]*types.Ticket, 0)
	if err := c.do(ctx, http.MethodGet, "/tickets", query, "", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) CreateTicket(ctx context.Context, in NewTicket) (*types.Ticket, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.CreateTicket")
	defer span.End()

	ticket := new(types.Ticket)
	if err := c.do(ctx, http.MethodPost, "/tickets", nil, "", in, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (c *Client) GetTicket(ctx context.Context, id string) (*types.Ticket, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.GetTicket")
	defer span.End()

	ticket := new(types.Ticket)
	if err := c.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(id), nil, "", nil, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (c *Client) UpdateTicket(ctx context.Context, id string, update types.TicketUpdate) (*types.Ticket, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.UpdateTicket")
	defer span.End()

	ticket := new(types.Ticket)
	if err := c.do(ctx, http.MethodPatch, "/tickets/"+url.PathEscape(id), nil, "", update, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (c *Client) ListMessages(ctx context.Context, ticketID string) ([]*types.TicketMessage, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListMessages")
	defer span.End()

	messages := make([]*types.TicketMessage, 0)
	if err := c.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(ticketID)+"/messages", nil, "", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) AddMessage(ctx context.Context, ticketID, content string) (*types.TicketMessage, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.AddMessage")
	defer span.End()

	message := new(types.TicketMessage)
	if err := c.do(ctx, http.MethodPost, "/tickets/"+url.PathEscape(ticketID)+"/messages", nil, "", contentRequest{Content: content}, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (c *Client) ListNotes(ctx context.Context, ticketID string) ([]*types.TicketNote, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListNotes")
	defer span.End()

	notes := make([]*types.TicketNote, 0)
	if err := c.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(ticketID)+"/notes", nil, "", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) AddNote(ctx context.Context, ticketID, content string, private bool) (*types.TicketNote, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.AddNote")
	defer span.End()

	note := new(types.TicketNote)
	body := contentRequest{Content: content, IsPrivate: &private}
	if err := c.do(ctx, http.MethodPost, "/tickets/"+url.PathEscape(ticketID)+"/notes", nil, "", body, note); err != nil {
		return nil, err
	}
	return note, nil
}
