// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPriority = errors.New("invalid priority")

// Role is the role a user holds in AutoCRM.
type Role string

const (
	RoleNone         Role = ""
	RoleCustomer     Role = "customer"
	RoleAgent        Role = "agent"
	RoleCompanyAdmin Role = "company_admin"
)

// Valid reports whether r is one of the assignable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleCompanyAdmin:
		return true
	}
	return false
}

// Staff reports whether r belongs to a company's support staff.
func (r Role) Staff() bool {
	return r == RoleAgent || r == RoleCompanyAdmin
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityMedium, PriorityHigh, PriorityUrgent, PriorityCritical:
		return true
	}
	return false
}

type Ticket struct {
	ID           string     `db:"id" json:"id" yaml:"id"`
	TicketNumber string     `db:"ticket_number" json:"ticket_number" yaml:"ticket_number"`
	Title        string     `db:"title" json:"title" yaml:"title"`
	Description  string     `db:"description" json:"description" yaml:"description"`
	Status       Status     `db:"status" json:"status" yaml:"status"`
	Priority     Priority   `db:"priority" json:"priority" yaml:"priority"`
	Category     string     `db:"category" json:"category,omitempty" yaml:"category,omitempty"`
	CustomerID   string     `db:"customer_id" json:"customer_id" yaml:"customer_id"`
	CompanyID    *string    `db:"company_id" json:"company_id,omitempty" yaml:"company_id,omitempty"`
	AssigneeID   *string    `db:"assignee_id" json:"assignee_id,omitempty" yaml:"assignee_id,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	ResolvedAt   *time.Time `db:"resolved_at" json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"`
	ClosedAt     *time.Time `db:"closed_at" json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
}

// TicketFilter narrows a ticket listing. Empty fields and "all" match everything.
type TicketFilter struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    uint64 `json:"limit,omitempty"`
}

// FilterAll disables the status or priority filter.
const FilterAll = "all"

// Matches reports whether t passes the filter. Search is a case-insensitive
// substring match on the title or the description.
func (f TicketFilter) Matches(t *Ticket) bool {
	if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != FilterAll && string(t.Priority) != f.Priority {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), term) || strings.Contains(strings.ToLower(t.Description), term)
}

// TicketScope restricts a listing to the rows a principal may see.
type TicketScope struct {
	CustomerID string
	CompanyID  string
}

type TicketUpdate struct {
	Status     *Status   `json:"status,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
}

type TicketMessage struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	TicketID  string    `db:"ticket_id" json:"ticket_id" yaml:"ticket_id"`
	SenderID  string    `db:"sender_id" json:"sender_id" yaml:"sender_id"`
	Content   string    `db:"content" json:"content" yaml:"content"`
	IsAgent   bool      `db:"is_agent" json:"is_agent" yaml:"is_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

type TicketNote struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	TicketID  string    `db:"ticket_id" json:"ticket_id" yaml:"ticket_id"`
	AuthorID  string    `db:"author_id" json:"author_id" yaml:"author_id"`
	Content   string    `db:"content" json:"content" yaml:"content"`
	IsPrivate bool      `db:"is_private" json:"is_private" yaml:"is_private"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

type Company struct {
	ID           string    `db:"id" json:"id" yaml:"id"`
	Name         string    `db:"name" json:"name" yaml:"name"`
	Industry     string    `db:"industry" json:"industry,omitempty" yaml:"industry,omitempty"`
	Description  string    `db:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Website      string    `db:"website" json:"website,omitempty" yaml:"website,omitempty"`
	SupportEmail string    `db:"support_email" json:"support_email,omitempty" yaml:"support_email,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty" yaml:"phone,omitempty"`
	Address      string    `db:"address" json:"address,omitempty" yaml:"address,omitempty"`
	City         string    `db:"city" json:"city,omitempty" yaml:"city,omitempty"`
	State        string    `db:"state" json:"state,omitempty" yaml:"state,omitempty"`
	Country      string    `db:"country" json:"country,omitempty" yaml:"country,omitempty"`
	PostalCode   string    `db:"postal_code" json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	LogoURL      string    `db:"logo_url" json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
	IsVerified   bool      `db:"is_verified" json:"is_verified" yaml:"is_verified"`
	AdminID      string    `db:"admin_id" json:"admin_id" yaml:"admin_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

// CompanySettings holds the editable company fields, nil means unchanged.
type CompanySettings struct {
	Name         *string `json:"name,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	Description  *string `json:"description,omitempty"`
	Website      *string `json:"website,omitempty"`
	SupportEmail *string `json:"support_email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
}

type CompanyStats struct {
	TotalAgents     int       `json:"total_agents" yaml:"total_agents"`
	ActiveTickets   int       `json:"active_tickets" yaml:"active_tickets"`
	ResolvedTickets int       `json:"resolved_tickets" yaml:"resolved_tickets"`
	RecentTickets   []*Ticket `json:"recent_tickets" yaml:"recent_tickets"`
}

type Agent struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	UserID    string    `db:"user_id" json:"user_id" yaml:"user_id"`
	CompanyID string    `db:"company_id" json:"company_id" yaml:"company_id"`
	Email     string    `db:"email" json:"email" yaml:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

type Invite struct {
	ID        string    `db:"id" json:"id" yaml:"id"`
	Token     string    `db:"token" json:"token" yaml:"token"`
	CompanyID string    `db:"company_id" json:"company_id" yaml:"company_id"`
	Email     string    `db:"email" json:"email" yaml:"email"`
	Role      Role      `db:"role" json:"role" yaml:"role"`
	CreatedBy string    `db:"created_by" json:"created_by" yaml:"created_by"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at" yaml:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

// Expired reports whether the invite can no longer be consumed at now.
func (i *Invite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

type UserRole struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Principal is the authenticated caller as seen by the backend services.
type Principal struct {
	UserID    string `json:"user_id" yaml:"user_id"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Role      Role   `json:"role" yaml:"role"`
	CompanyID string `json:"company_id,omitempty" yaml:"company_id,omitempty"`
}
