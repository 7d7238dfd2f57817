// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/db"
	"github.com/canonical/autocrm/internal/events"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

var (
	ErrForbidden           = errors.New("forbidden")
	ErrCompanyNotVerified  = errors.New("company is not verified")
	ErrEmptyContent        = errors.New("content must not be empty")
	ErrNoCompanyMembership = errors.New("user does not belong to a company")
)

// CreateTicketRequest is the body of a ticket submission.
type CreateTicketRequest struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Description string         `json:"description" validate:"required,max=10000"`
	Priority    types.Priority `json:"priority" validate:"required,oneof=low normal medium high urgent critical"`
	Status      types.Status   `json:"status,omitempty" validate:"omitempty,oneof=new open"`
	Category    string         `json:"category,omitempty" validate:"max=100"`
	CompanyID   string         `json:"company_id,omitempty" validate:"omitempty,uuid"`
	CustomerID  string         `json:"customer_id,omitempty"`
}

type Service struct {
	storage   StorageInterface
	authz     AuthzInterface
	publisher PublisherInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// scope returns the rows p may see: customers their own tickets, staff the
// tickets filed with their company.
func scope(p *types.Principal) (types.TicketScope, error) {
	switch {
	case p.Role.Staff():
		if p.CompanyID == "" {
			return types.TicketScope{}, ErrNoCompanyMembership
		}
		return types.TicketScope{CompanyID: p.CompanyID}, nil
	case p.Role == types.RoleCustomer, p.Role == types.RoleNone:
		return types.TicketScope{CustomerID: p.UserID}, nil
	}
	return types.TicketScope{}, ErrForbidden
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("ticket %q: %w", id, storage.ErrNotFound)
	}
	return nil
}

// load fetches a ticket within the principal's scope.
func (s *Service) load(ctx context.Context, p *types.Principal, id string) (*types.Ticket, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	sc, err := scope(p)
	if err != nil {
		return nil, err
	}

	return s.storage.GetTicket(ctx, id, sc)
}

func (s *Service) ListTickets(ctx context.Context, p *types.Principal, filter types.TicketFilter) ([]*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.ListTickets")
	defer span.End()

	sc, err := scope(p)
	if err != nil {
		return nil, err
	}

	filter.Search = strings.TrimSpace(filter.Search)

	return s.storage.ListTickets(ctx, sc, filter)
}

func (s *Service) CreateTicket(ctx context.Context, p *types.Principal, req *CreateTicketRequest) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.CreateTicket")
	defer span.End()

	if p.Role != types.RoleCustomer {
		return nil, fmt.Errorf("only customers submit tickets: %w", ErrForbidden)
	}

	if req.CustomerID != "" && req.CustomerID != p.UserID {
		return nil, fmt.Errorf("tickets are filed on behalf of the caller: %w", ErrForbidden)
	}

	t := &types.Ticket{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      types.DefaultStatus,
		Priority:    req.Priority,
		Category:    req.Category,
		CustomerID:  p.UserID,
	}
	if req.Status != "" {
		t.Status = req.Status
	}

	if req.CompanyID != "" {
		company, err := s.storage.GetCompany(ctx, req.CompanyID)
		if err != nil {
			return nil, err
		}
		if !company.IsVerified {
			return nil, ErrCompanyNotVerified
		}
		t.CompanyID = &company.ID
	}

	created, err := s.storage.CreateTicket(ctx, t)
	if err != nil {
		return nil, err
	}

	companyID := ""
	if created.CompanyID != nil {
		companyID = *created.CompanyID
	}

	if err := s.authz.LinkTicket(ctx, created.ID, p.UserID, companyID); err != nil {
		s.logger.Errorf("failed to link ticket %s: %v", created.ID, err)
		return nil, fmt.Errorf("failed to assign ticket permissions: %w", err)
	}

	s.publish(ctx, events.TicketEvent{Type: events.TicketCreated, ActorID: p.UserID, Ticket: created})

	return created, nil
}

// publish sends event once the request's transaction has committed.
func (s *Service) publish(ctx context.Context, event events.TicketEvent) {
	db.AfterCommit(ctx, func() {
		s.publisher.PublishTicket(context.WithoutCancel(ctx), event)
	})
}

func (s *Service) GetTicket(ctx context.Context, p *types.Principal, id string) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.GetTicket")
	defer span.End()

	t, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanViewTicket(ctx, t.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Security().AuthzFailure(p.UserID, "ticket:"+t.ID)
		return nil, fmt.Errorf("ticket %s: %w", id, storage.ErrNotFound)
	}

	return t, nil
}

func (s *Service) UpdateTicket(ctx context.Context, p *types.Principal, id string, update types.TicketUpdate) (*types.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.UpdateTicket")
	defer span.End()

	if !p.Role.Staff() {
		return nil, fmt.Errorf("only staff update tickets: %w", ErrForbidden)
	}

	current, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanEditTicket(ctx, current.ID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Security().AuthzFailure(p.UserID, "ticket:"+current.ID)
		return nil, ErrForbidden
	}

	if update.Status != nil && *update.Status != current.Status {
		if err := types.ValidateTransition(current.Status, *update.Status); err != nil {
			return nil, err
		}
	} else {
		update.Status = nil
	}

	if update.Priority != nil && !update.Priority.Valid() {
		return nil, fmt.Errorf("unknown priority %q: %w", *update.Priority, types.ErrInvalidPriority)
	}

	if update.AssigneeID != nil && *update.AssigneeID != "" {
		if _, err := uuid.Parse(*update.AssigneeID); err != nil {
			return nil, fmt.Errorf("assignee %q: %w", *update.AssigneeID, storage.ErrNotFound)
		}
	}

	if update.Status == nil && update.Priority == nil && update.AssigneeID == nil {
		return current, nil
	}

	updated, err := s.storage.UpdateTicket(ctx, current.ID, update)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		s.logger.Security().AdminAction(p.UserID, "ticket.status."+string(*update.Status), "ticket:"+current.ID)
	}

	s.publish(ctx, events.TicketEvent{Type: events.TicketUpdated, ActorID: p.UserID, Ticket: updated})

	return updated, nil
}

func (s *Service) ListMessages(ctx context.Context, p *types.Principal, ticketID string) ([]*types.TicketMessage, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.ListMessages")
	defer span.End()

	t, err := s.load(ctx, p, ticketID)
	if err != nil {
		return nil, err
	}

	return s.storage.ListMessages(ctx, t.ID)
}

func (s *Service) AddMessage(ctx context.Context, p *types.Principal, ticketID, content string) (*types.TicketMessage, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.AddMessage")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	t, err := s.load(ctx, p, ticketID)
	if err != nil {
		return nil, err
	}

	return s.storage.AddMessage(ctx, &types.TicketMessage{
		TicketID: t.ID,
		SenderID: p.UserID,
		Content:  content,
		IsAgent:  p.Role.Staff(),
	})
}

func (s *Service) ListNotes(ctx context.Context, p *types.Principal, ticketID string) ([]*types.TicketNote, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.ListNotes")
	defer span.End()

	if !p.Role.Staff() {
		return nil, fmt.Errorf("notes are internal to staff: %w", ErrForbidden)
	}

	t, err := s.load(ctx, p, ticketID)
	if err != nil {
		return nil, err
	}

	return s.storage.ListNotes(ctx, t.ID)
}

func (s *Service) AddNote(ctx context.Context, p *types.Principal, ticketID, content string, private bool) (*types.TicketNote, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Service.AddNote")
	defer span.End()

	if !p.Role.Staff() {
		return nil, fmt.Errorf("notes are internal to staff: %w", ErrForbidden)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	t, err := s.load(ctx, p, ticketID)
	if err != nil {
		return nil, err
	}

	return s.storage.AddNote(ctx, &types.TicketNote{
		TicketID:  t.ID,
		AuthorID:  p.UserID,
		Content:   content,
		IsPrivate: private,
	})
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	publisher PublisherInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		authz:     authz,
		publisher: publisher,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}
