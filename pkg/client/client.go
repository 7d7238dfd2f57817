// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/pkg/authentication"
)

const apiPrefix = "/api/v0"

var ErrInvalidServiceURL = errors.New("invalid service url")

// APIError is a non 2xx answer of the AutoCRM API.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// TokenSourceInterface provides the session token sent as bearer token.
type TokenSourceInterface interface {
	Load() (string, error)
}

// Client talks to the AutoCRM HTTP API with the service key and the bearer
// token of the current session.
type Client struct {
	baseURL *url.URL
	apiKey  string
	tokens  TokenSourceInterface
	http    *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + apiPrefix + path
	u.RawQuery = query.Encode()
	return u.String()
}

// do sends body as JSON, or as is when it already is an io.Reader, and
// decodes the answer into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body interface{}, out interface{}) error {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(authentication.APIKeyHeader, c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokens != nil {
		token, err := c.tokens.Load()
		if err != nil {
			return fmt.Errorf("failed to load session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debugf("%s %s answered %d in %s", method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	apiErr.Status = resp.StatusCode

	return apiErr
}

func NewClient(
	serviceURL, apiKey string,
	tokens TokenSourceInterface,
	timeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*Client, error) {
	u, err := url.Parse(serviceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServiceURL, serviceURL)
	}

	httpClient := tracing.NewHTTPClient()
	httpClient.Timeout = timeout

	return &Client{
		baseURL: u,
		apiKey:  apiKey,
		tokens:  tokens,
		http:    httpClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}, nil
}
