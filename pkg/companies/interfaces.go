// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"
	"io"

	"github.com/canonical/autocrm/internal/types"
)

type ServiceInterface interface {
	ListVerified(ctx context.Context) ([]*types.Company, error)
	GetVerified(ctx context.Context, id string) (*types.Company, error)
	Register(ctx context.Context, p *types.Principal, req *RegisterCompanyRequest) (*types.Company, error)
	GetOwn(ctx context.Context, p *types.Principal) (*types.Company, error)
	UpdateSettings(ctx context.Context, p *types.Principal, settings types.CompanySettings) (*types.Company, error)
	UploadLogo(ctx context.Context, p *types.Principal, filename string, r io.Reader, size int64, contentType string) (string, error)
	Stats(ctx context.Context, p *types.Principal) (*types.CompanyStats, error)
}

// StorageInterface defines the storage operations required by the companies package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompany(ctx context.Context, id string) (*types.Company, error)
	GetCompanyByAdmin(ctx context.Context, adminID string) (*types.Company, error)
	ListVerifiedCompanies(ctx context.Context) ([]*types.Company, error)
	UpdateCompany(ctx context.Context, id string, settings types.CompanySettings) (*types.Company, error)
	SetCompanyLogo(ctx context.Context, id, logo string) error
	CountAgents(ctx context.Context, companyID string) (int, error)
	CountTickets(ctx context.Context, companyID string) (active int, resolved int, err error)
	ListTickets(ctx context.Context, scope types.TicketScope, filter types.TicketFilter) ([]*types.Ticket, error)
}

type AuthzInterface interface {
	AssignCompanyAdmin(ctx context.Context, companyID, userID string) error
}

type ObjectStorageInterface interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error
	PublicURL(bucket, path string) string
}
