// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"sync"
	"time"

	ory "github.com/ory/client-go"
)

// AuthEvent names a change of the authentication state.
type AuthEvent string

const (
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Session is the authenticated identity as seen by a client.
type Session struct {
	UserID        string                 `json:"user_id" yaml:"user_id"`
	Email         string                 `json:"email" yaml:"email"`
	Token         string                 `json:"-" yaml:"-"`
	EmailVerified bool                   `json:"email_verified" yaml:"email_verified"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ExpiresAt     *time.Time             `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// MetadataRole returns the role stored in the identity's public metadata.
func (s *Session) MetadataRole() string {
	if s == nil || s.Metadata == nil {
		return ""
	}
	role, _ := s.Metadata["role"].(string)
	return role
}

func newSession(s *ory.Session, token string) *Session {
	session := &Session{Token: token, ExpiresAt: s.ExpiresAt}

	identity := s.GetIdentity()
	session.UserID = identity.GetId()
	session.Email = traitString(identity.GetTraits(), "email")

	session.Metadata = identity.GetMetadataPublic()

	for _, address := range identity.GetVerifiableAddresses() {
		if address.GetVerified() {
			session.EmailVerified = true
			break
		}
	}

	return session
}

type AuthStateListener func(AuthEvent, *Session)

// broadcaster fans auth state changes out to listeners. Listeners run on the
// emitting goroutine, outside the lock.
type broadcaster struct {
	mu        sync.Mutex
	next      int
	listeners map[int]AuthStateListener
}

func (b *broadcaster) subscribe(fn AuthStateListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[int]AuthStateListener)
	}

	id := b.next
	b.next++
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

func (b *broadcaster) emit(event AuthEvent, session *Session) {
	b.mu.Lock()
	listeners := make([]AuthStateListener, 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(event, session)
	}
}
