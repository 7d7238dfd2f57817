// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/canonical/autocrm/internal/types"
)

// NewCompany is the company registration form.
type NewCompany struct {
	Name         string `json:"name"`
	Industry     string `json:"industry,omitempty"`
	Description  string `json:"description,omitempty"`
	Website      string `json:"website,omitempty"`
	SupportEmail string `json:"support_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
}

type logoResponse struct {
	LogoURL string `json:"logo_url"`
}

func (c *Client) ListCompanies(ctx context.Context) ([]*types.Company, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.ListCompanies")
	defer span.End()

	companies := make([]*types.Company, 0)
	if err := c.do(ctx, http.MethodGet, "/companies", nil, "", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) GetCompany(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.GetCompany")
	defer span.End()

	company := new(types.Company)
	if err := c.do(ctx, http.MethodGet, "/companies/"+url.PathEscape(id), nil, "", nil, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (c *Client) RegisterCompany(ctx context.Context, in NewCompany) (*types.Company, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.RegisterCompany")
	defer span.End()

	company := new(types.Company)
	if err := c.do(ctx, http.MethodPost, "/companies", nil, "", in, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (c *Client) GetOwnCompany(ctx context.Context) (*types.Company, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.GetOwnCompany")
	defer span.End()

	company := new(types.Company)
	if err := c.do(ctx, http.MethodGet, "/company", nil, "", nil, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, settings types.CompanySettings) (*types.Company, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.UpdateCompany")
	defer span.End()

	company := new(types.Company)
	if err := c.do(ctx, http.MethodPatch, "/company", nil, "", settings, company); err != nil {
		return nil, err
	}
	return company, nil
}

// UploadLogo sends the logo as multipart form data and returns its public URL.
func (c *Client) UploadLogo(ctx context.Context, filename string, logo io.Reader) (string, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.UploadLogo")
	defer span.End()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, logo); err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var out logoResponse
	if err := c.do(ctx, http.MethodPut, "/company/logo", nil, w.FormDataContentType(), &buf, &out); err != nil {
		return "", err
	}
	return out.LogoURL, nil
}

func (c *Client) CompanyStats(ctx context.Context) (*types.CompanyStats, error) {
	ctx, span := c.tracer.Start(ctx, "client.Client.CompanyStats")
	defer span.End()

	stats := new(types.CompanyStats)
	if err := c.do(ctx, http.MethodGet, "/company/stats", nil, "", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}
