// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// RegistrationHook is the body Kratos posts after a successful registration.
// The web hook jsonnet forwards the identity and the transient payload the
// client attached to the registration flow.
type RegistrationHook struct {
	Identity         KratosIdentity   `json:"identity"`
	TransientPayload TransientPayload `json:"transient_payload"`
}

type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email"`
}

type TransientPayload struct {
	Role string `json:"role"`
}
