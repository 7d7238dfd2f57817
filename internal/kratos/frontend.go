// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	ory "github.com/ory/client-go"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

const passwordMethod = "password"

var (
	ErrNoSession = errors.New("no active session")
	// ErrEmailNotConfirmed is returned together with a valid session when the
	// identity has no verified address. Clients match on its message.
	ErrEmailNotConfirmed = errors.New("Email not confirmed")
)

// AuthError carries the human readable message Kratos attached to a failed flow.
type AuthError struct {
	Status  int
	Message string
	err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.err
}

type flowErrorBody struct {
	Error *struct {
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
	UI *struct {
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
		Nodes []struct {
			Messages []struct {
				Text string `json:"text"`
			} `json:"messages"`
		} `json:"nodes"`
	} `json:"ui"`
}

func (b *flowErrorBody) message() string {
	if b.Error != nil {
		if b.Error.Reason != "" {
			return b.Error.Reason
		}
		if b.Error.Message != "" {
			return b.Error.Message
		}
	}
	if b.UI != nil {
		for _, m := range b.UI.Messages {
			if m.Text != "" {
				return m.Text
			}
		}
		for _, n := range b.UI.Nodes {
			for _, m := range n.Messages {
				if m.Text != "" {
					return m.Text
				}
			}
		}
	}
	return ""
}

// flowError extracts the message of a failed Kratos call.
func flowError(err error, r *http.Response) error {
	status := 0
	if r != nil {
		status = r.StatusCode
	}

	var apiErr *ory.GenericOpenAPIError
	if errors.As(err, &apiErr) {
		var body flowErrorBody
		if jsonErr := json.Unmarshal(apiErr.Body(), &body); jsonErr == nil {
			if msg := body.message(); msg != "" {
				return &AuthError{Status: status, Message: msg, err: err}
			}
		}
	}

	return &AuthError{Status: status, Message: err.Error(), err: err}
}

func unauthorized(r *http.Response) bool {
	return r != nil && r.StatusCode == http.StatusUnauthorized
}

// FrontendClient drives the Kratos public API with native (token based)
// flows and keeps the resulting session token in a TokenStore.
type FrontendClient struct {
	client *ory.APIClient
	tokens TokenStoreInterface
	events broadcaster

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// WhoAmI resolves a session token into its session.
func (c *FrontendClient) WhoAmI(ctx context.Context, token string) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.WhoAmI")
	defer span.End()

	s, r, err := c.client.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		if unauthorized(r) {
			return nil, ErrNoSession
		}
		return nil, flowError(err, r)
	}

	return newSession(s, token), nil
}

// GetSession returns the persisted session, ErrNoSession when there is none
// or it is no longer valid.
func (c *FrontendClient) GetSession(ctx context.Context) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.GetSession")
	defer span.End()

	token, err := c.tokens.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	session, err := c.WhoAmI(ctx, token)
	if errors.Is(err, ErrNoSession) {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.logger.Errorf("failed to clear stale session token: %v", clearErr)
		}
	}

	return session, err
}

func (c *FrontendClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.SignIn")
	defer span.End()

	flow, r, err := c.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, flowError(err, r)
	}

	body := ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(
		&ory.UpdateLoginFlowWithPasswordMethod{
			Method:     passwordMethod,
			Identifier: email,
			Password:   password,
		},
	)

	login, r, err := c.client.FrontendAPI.UpdateLoginFlow(ctx).Flow(flow.GetId()).UpdateLoginFlowBody(body).Execute()
	if err != nil {
		c.logger.Security().AuthnLoginFail(email)
		return nil, flowError(err, r)
	}

	s := login.GetSession()
	session := newSession(&s, login.GetSessionToken())

	if err := c.tokens.Save(session.Token); err != nil {
		return nil, err
	}

	c.logger.Security().AuthnLoginSuccess(session.UserID)
	c.events.emit(EventSignedIn, session)

	if !session.EmailVerified {
		return session, ErrEmailNotConfirmed
	}

	return session, nil
}

// SignUp registers a password identity. The requested role travels in the
// transient payload to the registration webhook which assigns it.
func (c *FrontendClient) SignUp(ctx context.Context, email, password string, role types.Role) (*Session, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.SignUp")
	defer span.End()

	flow, r, err := c.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, flowError(err, r)
	}

	method := &ory.UpdateRegistrationFlowWithPasswordMethod{
		Method:   passwordMethod,
		Password: password,
		Traits:   map[string]interface{}{"email": email},
	}
	method.SetTransientPayload(map[string]interface{}{"role": string(role)})

	registration, r, err := c.client.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.GetId()).
		UpdateRegistrationFlowBody(ory.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(method)).
		Execute()
	if err != nil {
		return nil, flowError(err, r)
	}

	// without a session hook on registration, log in explicitly
	if registration.GetSessionToken() == "" || registration.Session == nil {
		return c.SignIn(ctx, email, password)
	}

	session := newSession(registration.Session, registration.GetSessionToken())
	if err := c.tokens.Save(session.Token); err != nil {
		return nil, err
	}

	c.events.emit(EventSignedIn, session)

	if !session.EmailVerified {
		return session, ErrEmailNotConfirmed
	}

	return session, nil
}

// SignOut revokes the session and always forgets the local token.
func (c *FrontendClient) SignOut(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.SignOut")
	defer span.End()

	token, err := c.tokens.Load()
	if err != nil {
		return err
	}

	var logoutErr error
	if token != "" {
		r, err := c.client.FrontendAPI.PerformNativeLogout(ctx).
			PerformNativeLogoutBody(*ory.NewPerformNativeLogoutBody(token)).
			Execute()
		if err != nil && !unauthorized(r) {
			logoutErr = flowError(err, r)
		}
	}

	if err := c.tokens.Clear(); err != nil {
		return err
	}

	c.events.emit(EventSignedOut, nil)

	return logoutErr
}

// ResetPassword starts a recovery flow that mails a code to email.
func (c *FrontendClient) ResetPassword(ctx context.Context, email string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.ResetPassword")
	defer span.End()

	flow, r, err := c.client.FrontendAPI.CreateNativeRecoveryFlow(ctx).Execute()
	if err != nil {
		return flowError(err, r)
	}

	method := &ory.UpdateRecoveryFlowWithCodeMethod{Method: "code"}
	method.SetEmail(email)

	_, r, err = c.client.FrontendAPI.UpdateRecoveryFlow(ctx).
		Flow(flow.GetId()).
		UpdateRecoveryFlowBody(ory.UpdateRecoveryFlowWithCodeMethodAsUpdateRecoveryFlowBody(method)).
		Execute()
	if err != nil {
		return flowError(err, r)
	}

	return nil
}

// UpdatePassword changes the password of the signed in identity.
func (c *FrontendClient) UpdatePassword(ctx context.Context, password string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.FrontendClient.UpdatePassword")
	defer span.End()

	token, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNoSession
	}

	flow, r, err := c.client.FrontendAPI.CreateNativeSettingsFlow(ctx).XSessionToken(token).Execute()
	if err != nil {
		return flowError(err, r)
	}

	body := ory.UpdateSettingsFlowWithPasswordMethodAsUpdateSettingsFlowBody(
		&ory.UpdateSettingsFlowWithPasswordMethod{
			Method:   passwordMethod,
			Password: password,
		},
	)

	_, r, err = c.client.FrontendAPI.UpdateSettingsFlow(ctx).
		Flow(flow.GetId()).
		XSessionToken(token).
		UpdateSettingsFlowBody(body).
		Execute()
	if err != nil {
		return flowError(err, r)
	}

	return nil
}

// OnAuthStateChange registers fn for auth state events and returns a function
// removing it.
func (c *FrontendClient) OnAuthStateChange(fn AuthStateListener) func() {
	return c.events.subscribe(fn)
}

// Watch re-validates the stored session every interval until ctx is done,
// emitting TOKEN_REFRESHED while it holds and SIGNED_OUT once it is gone.
func (c *FrontendClient) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

func (c *FrontendClient) refresh(ctx context.Context) {
	token, err := c.tokens.Load()
	if err != nil || token == "" {
		return
	}

	session, err := c.GetSession(ctx)
	switch {
	case errors.Is(err, ErrNoSession):
		c.events.emit(EventSignedOut, nil)
	case err != nil:
		c.logger.Debugf("session refresh failed: %v", err)
	default:
		c.events.emit(EventTokenRefreshed, session)
	}
}

func NewFrontendClient(kratosPublicURL string, tokens TokenStoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *FrontendClient {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosPublicURL}}
	conf.HTTPClient = tracing.NewHTTPClient()

	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	return &FrontendClient{
		client:  ory.NewAPIClient(conf),
		tokens:  tokens,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
