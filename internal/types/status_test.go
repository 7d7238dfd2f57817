// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusNew, StatusOpen, true},
		{StatusOpen, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusOpen, true},
		{StatusClosed, StatusOpen, true},
		{StatusClosed, StatusReopened, true},
		{StatusOpen, StatusPending, true},
		{StatusInProgress, StatusPending, true},
		{StatusPending, StatusOpen, true},
		{StatusPending, StatusInProgress, true},
		{StatusReopened, StatusInProgress, true},

		{StatusNew, StatusClosed, false},
		{StatusOpen, StatusClosed, false},
		{StatusOpen, StatusResolved, false},
		{StatusInProgress, StatusOpen, false},
		{StatusClosed, StatusInProgress, false},
		{StatusPending, StatusResolved, false},
		{StatusResolved, StatusPending, false},
		{StatusOpen, StatusOpen, false},
		{StatusOpen, StatusNew, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}

			err := ValidateTransition(tt.from, tt.to)
			if tt.allowed && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestValidateTransitionUnknownStatus(t *testing.T) {
	if err := ValidateTransition(StatusOpen, Status("archived")); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRoleAndPriority(t *testing.T) {
	if !RoleAgent.Staff() || !RoleCompanyAdmin.Staff() || RoleCustomer.Staff() {
		t.Error("unexpected staff classification")
	}
	if Role("superuser").Valid() || RoleNone.Valid() {
		t.Error("unexpected valid role")
	}
	if !PriorityUrgent.Valid() || Priority("blocker").Valid() {
		t.Error("unexpected priority validation")
	}
}

func TestInviteExpired(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	i := &Invite{ExpiresAt: now.Add(time.Hour)}

	if i.Expired(now) {
		t.Error("invite should still be valid")
	}
	if !i.Expired(now.Add(time.Hour)) {
		t.Error("invite should expire at its deadline")
	}
}

func TestTicketFilterMatches(t *testing.T) {
	login := &Ticket{Title: "Login issue", Description: "the form spins", Status: StatusOpen, Priority: PriorityUrgent}
	cannot := &Ticket{Title: "Account", Description: "I cannot LOGIN since Monday", Status: StatusPending, Priority: PriorityLow}
	printer := &Ticket{Title: "Printer issue", Description: "paper jam", Status: StatusOpen, Priority: PriorityLow}

	tests := []struct {
		name     string
		filter   TicketFilter
		expected []bool
	}{
		{name: "everything", filter: TicketFilter{Status: FilterAll, Priority: FilterAll}, expected: []bool{true, true, true}},
		{name: "search title or description", filter: TicketFilter{Search: "login"}, expected: []bool{true, true, false}},
		{name: "status", filter: TicketFilter{Status: "open"}, expected: []bool{true, false, true}},
		{name: "priority and search", filter: TicketFilter{Priority: "low", Search: " Issue "}, expected: []bool{false, false, true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for i, ticket := range []*Ticket{login, cannot, printer} {
				if got := test.filter.Matches(ticket); got != test.expected[i] {
					t.Errorf("ticket %q: expected %v, got %v", ticket.Title, test.expected[i], got)
				}
			}
		})
	}
}
