// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package session keeps the client side view of who is signed in and with
// which role.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
	"github.com/canonical/autocrm/pkg/gate"
)

const emailNotConfirmed = "Email not confirmed"

var ErrInvalidRole = errors.New("role cannot be chosen at sign up")

// State is a snapshot of the session. Role only means something while
// UserID is set; a user without a resolved role is a valid transient state.
type State struct {
	Loading bool       `json:"loading" yaml:"loading"`
	UserID  string     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Email   string     `json:"email,omitempty" yaml:"email,omitempty"`
	Role    types.Role `json:"role,omitempty" yaml:"role,omitempty"`
	Token   string     `json:"-" yaml:"-"`
	Err     error      `json:"-" yaml:"-"`
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.UserID != ""
}

// Gate returns the fields the authorization gate decides on.
func (s State) Gate() gate.Session {
	return gate.Session{Loading: s.Loading, UserID: s.UserID, Role: s.Role}
}

type Observer func(State)

// Store owns the session state. Observers run outside the lock on the
// goroutine that caused the change.
type Store struct {
	auth  AuthInterface
	roles RoleSourceInterface

	mu           sync.Mutex
	state        State
	metadataRole types.Role
	observers    map[int]Observer
	next         int
	detach       func()

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Initialize fetches the persisted session once and resolves its role
// before leaving the loading state. A missing session is not an error, any
// other failure is recorded on the state. Loading is false afterwards in
// every case.
func (s *Store) Initialize(ctx context.Context) State {
	ctx, span := s.tracer.Start(ctx, "session.Store.Initialize")
	defer span.End()

	session, err := s.auth.GetSession(ctx)

	s.mu.Lock()
	s.state.Err = nil
	if err != nil {
		if !errors.Is(err, kratos.ErrNoSession) {
			s.logger.Debugf("session fetch failed: %v", err)
			s.state.Err = err
		}
		s.clearLocked()
	} else {
		s.applyLocked(session)
	}
	userID := s.state.UserID
	s.mu.Unlock()

	if userID != "" {
		s.RoleLookup(ctx, userID)
	}

	s.mu.Lock()
	s.state.Loading = false
	s.mu.Unlock()

	s.notify()

	return s.Snapshot()
}

// OnAuthStateChanged re-derives the user from an auth event and looks the
// role up again. It never puts the store back into loading.
func (s *Store) OnAuthStateChanged(ctx context.Context, event kratos.AuthEvent, session *kratos.Session) {
	ctx, span := s.tracer.Start(ctx, "session.Store.OnAuthStateChanged")
	defer span.End()

	s.mu.Lock()
	if event == kratos.EventSignedOut || session == nil || session.UserID == "" {
		s.clearLocked()
	} else {
		s.applyLocked(session)
		s.state.Err = nil
	}
	userID := s.state.UserID
	s.mu.Unlock()

	s.notify()

	if userID != "" {
		s.RoleLookup(ctx, userID)
	}
}

// RoleLookup resolves the role of userID from the role assignment record,
// falling back to the identity metadata. Failures leave the role unset.
func (s *Store) RoleLookup(ctx context.Context, userID string) types.Role {
	ctx, span := s.tracer.Start(ctx, "session.Store.RoleLookup")
	defer span.End()

	var role types.Role

	p, err := s.roles.Me(ctx)
	switch {
	case err != nil:
		s.logger.Debugf("role lookup for %s failed: %v", userID, err)
	case p.UserID == userID && p.Role.Valid():
		role = p.Role
	}

	s.mu.Lock()
	if s.state.UserID != userID {
		// the user changed while the lookup was in flight
		s.mu.Unlock()
		return role
	}
	if role == types.RoleNone {
		role = s.metadataRole
	}
	changed := s.state.Role != role
	s.state.Role = role
	s.mu.Unlock()

	if changed {
		s.notify()
	}

	return role
}

// SignIn authenticates with email and password. A session whose address is
// not confirmed yet is accepted.
func (s *Store) SignIn(ctx context.Context, email, password string) (*kratos.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignIn")
	defer span.End()

	session, err := s.auth.SignIn(ctx, email, password)
	return s.lenient(session, err)
}

// SignUp registers a new user with a self-service role and signs it in.
func (s *Store) SignUp(ctx context.Context, email, password string, role types.Role) (*kratos.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignUp")
	defer span.End()

	if role != types.RoleCustomer && role != types.RoleCompanyAdmin {
		return nil, ErrInvalidRole
	}

	session, err := s.auth.SignUp(ctx, email, password, role)
	return s.lenient(session, err)
}

// lenient records the outcome of a sign in on the state, a success clears
// the error of an earlier attempt.
func (s *Store) lenient(session *kratos.Session, err error) (*kratos.Session, error) {
	if err != nil && (!strings.Contains(err.Error(), emailNotConfirmed) || session == nil || session.UserID == "") {
		s.mu.Lock()
		s.state.Err = err
		s.mu.Unlock()

		return nil, err
	}

	s.mu.Lock()
	s.state.Err = nil
	s.mu.Unlock()

	return session, nil
}

// SignOut ends the remote session and clears the local one even when the
// remote call fails.
func (s *Store) SignOut(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignOut")
	defer span.End()

	err := s.auth.SignOut(ctx)

	s.mu.Lock()
	s.clearLocked()
	s.state.Err = err
	s.mu.Unlock()

	s.notify()

	return err
}

func (s *Store) ResetPassword(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.ResetPassword")
	defer span.End()

	return s.auth.ResetPassword(ctx, email)
}

func (s *Store) UpdatePassword(ctx context.Context, password string) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.UpdatePassword")
	defer span.End()

	return s.auth.UpdatePassword(ctx, password)
}

// Subscribe registers fn for state changes and returns a function removing it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close detaches the store from the authentication service and drops all
// observers.
func (s *Store) Close() {
	s.mu.Lock()
	detach := s.detach
	s.detach = nil
	s.observers = make(map[int]Observer)
	s.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (s *Store) applyLocked(session *kratos.Session) {
	if s.state.UserID != session.UserID {
		s.state.Role = types.RoleNone
	}
	s.state.UserID = session.UserID
	s.state.Email = session.Email
	s.state.Token = session.Token
	s.metadataRole = types.RoleNone
	if role := types.Role(session.MetadataRole()); role.Valid() {
		s.metadataRole = role
	}
}

func (s *Store) clearLocked() {
	s.state.UserID = ""
	s.state.Email = ""
	s.state.Token = ""
	s.state.Role = types.RoleNone
	s.metadataRole = types.RoleNone
}

func (s *Store) notify() {
	s.mu.Lock()
	state := s.state
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

// NewStore returns a store in the loading state subscribed to auth events.
func NewStore(auth AuthInterface, roles RoleSourceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	s := new(Store)

	s.auth = auth
	s.roles = roles
	s.state = State{Loading: true}
	s.observers = make(map[int]Observer)

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	s.detach = auth.OnAuthStateChange(func(event kratos.AuthEvent, session *kratos.Session) {
		s.OnAuthStateChanged(context.Background(), event, session)
	})

	return s
}
