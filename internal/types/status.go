// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Status string

const (
	StatusNew        Status = "new"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusPending    Status = "pending"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusReopened   Status = "reopened"
)

// DefaultStatus is the status of a freshly submitted ticket.
const DefaultStatus = StatusOpen

// transitions lists the legal moves out of each status. Reopened behaves like open.
var transitions = map[Status][]Status{
	StatusNew:        {StatusOpen},
	StatusOpen:       {StatusInProgress, StatusPending},
	StatusReopened:   {StatusInProgress, StatusPending},
	StatusInProgress: {StatusPending, StatusResolved},
	StatusPending:    {StatusOpen, StatusInProgress},
	StatusResolved:   {StatusClosed, StatusOpen, StatusReopened},
	StatusClosed:     {StatusOpen, StatusReopened},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Active reports whether the ticket still needs attention from the company.
func (s Status) Active() bool {
	return s != StatusClosed
}

// CanTransition reports whether a ticket may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition wrapped with both statuses
// when the move is not allowed.
func ValidateTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q: %w", to, ErrInvalidTransition)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s to %s: %w", from, to, ErrInvalidTransition)
	}
	return nil
}
