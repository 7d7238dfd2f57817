// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/types"
)

const recentTicketsLimit = 5

var (
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyAdmin    = errors.New("user already administers a company")
	ErrNoCompany       = errors.New("no company registered")
	ErrUnsupportedLogo = errors.New("unsupported logo format")
	ErrEmptyName       = errors.New("company name must not be empty")
)

var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// RegisterCompanyRequest is the company registration form.
type RegisterCompanyRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Industry     string `json:"industry,omitempty" validate:"max=100"`
	Description  string `json:"description,omitempty" validate:"max=5000"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	SupportEmail string `json:"support_email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty" validate:"max=50"`
	Address      string `json:"address,omitempty" validate:"max=500"`
	City         string `json:"city,omitempty" validate:"max=100"`
	State        string `json:"state,omitempty" validate:"max=100"`
	Country      string `json:"country,omitempty" validate:"max=100"`
	PostalCode   string `json:"postal_code,omitempty" validate:"max=20"`
}

type Service struct {
	storage    StorageInterface
	authz      AuthzInterface
	objects    ObjectStorageInterface
	logoBucket string
	now        func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// withLogoURL turns the stored logo object name into a URL browsers can load.
func (s *Service) withLogoURL(c *types.Company) *types.Company {
	if c == nil || c.LogoURL == "" || strings.Contains(c.LogoURL, "://") {
		return c
	}
	c.LogoURL = s.objects.PublicURL(s.logoBucket, c.LogoURL)
	return c
}

// admin returns the company administered by p.
func (s *Service) admin(p *types.Principal) (string, error) {
	if p.Role != types.RoleCompanyAdmin {
		return "", fmt.Errorf("company administrators only: %w", ErrForbidden)
	}
	if p.CompanyID == "" {
		return "", ErrNoCompany
	}
	return p.CompanyID, nil
}

func (s *Service) ListVerified(ctx context.Context) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.ListVerified")
	defer span.End()

	companies, err := s.storage.ListVerifiedCompanies(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range companies {
		s.withLogoURL(c)
	}

	return companies, nil
}

func (s *Service) GetVerified(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.GetVerified")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("company %q: %w", id, storage.ErrNotFound)
	}

	c, err := s.storage.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsVerified {
		return nil, fmt.Errorf("company %q: %w", id, storage.ErrNotFound)
	}

	return s.withLogoURL(c), nil
}

func (s *Service) Register(ctx context.Context, p *types.Principal, req *RegisterCompanyRequest) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.Register")
	defer span.End()

	if p.Role != types.RoleCompanyAdmin {
		return nil, fmt.Errorf("company administrators only: %w", ErrForbidden)
	}
	if p.CompanyID != "" {
		return nil, ErrAlreadyAdmin
	}

	created, err := s.storage.CreateCompany(ctx, &types.Company{
		Name:         strings.TrimSpace(req.Name),
		Industry:     req.Industry,
		Description:  req.Description,
		Website:      req.Website,
		SupportEmail: req.SupportEmail,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		AdminID:      p.UserID,
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, ErrAlreadyAdmin
	}
	if err != nil {
		return nil, err
	}

	if err := s.authz.AssignCompanyAdmin(ctx, created.ID, p.UserID); err != nil {
		s.logger.Errorf("failed to assign company admin: %v", err)
		return nil, fmt.Errorf("failed to assign company permissions: %w", err)
	}

	s.logger.Security().AdminAction(p.UserID, "company.register", "company:"+created.ID)

	return created, nil
}

func (s *Service) GetOwn(ctx context.Context, p *types.Principal) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.GetOwn")
	defer span.End()

	if p.Role != types.RoleCompanyAdmin {
		return nil, fmt.Errorf("company administrators only: %w", ErrForbidden)
	}

	c, err := s.storage.GetCompanyByAdmin(ctx, p.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoCompany
	}
	if err != nil {
		return nil, err
	}

	return s.withLogoURL(c), nil
}

func (s *Service) UpdateSettings(ctx context.Context, p *types.Principal, settings types.CompanySettings) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.UpdateSettings")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return nil, err
	}

	if settings.Name != nil && strings.TrimSpace(*settings.Name) == "" {
		return nil, ErrEmptyName
	}

	c, err := s.storage.UpdateCompany(ctx, companyID, settings)
	if err != nil {
		return nil, err
	}

	return s.withLogoURL(c), nil
}

// LogoObjectName names an uploaded logo after its upload time, keeping the
// original extension.
func LogoObjectName(filename string, at time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !logoExtensions[ext] {
		return "", fmt.Errorf("%q: %w", ext, ErrUnsupportedLogo)
	}
	return fmt.Sprintf("%d%s", at.UnixMilli(), ext), nil
}

func (s *Service) UploadLogo(ctx context.Context, p *types.Principal, filename string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.UploadLogo")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return "", err
	}

	name, err := LogoObjectName(filename, s.now())
	if err != nil {
		return "", err
	}

	if err := s.objects.Upload(ctx, s.logoBucket, name, r, size, contentType); err != nil {
		return "", err
	}

	if err := s.storage.SetCompanyLogo(ctx, companyID, name); err != nil {
		return "", err
	}

	return s.objects.PublicURL(s.logoBucket, name), nil
}

func (s *Service) Stats(ctx context.Context, p *types.Principal) (*types.CompanyStats, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.Stats")
	defer span.End()

	companyID, err := s.admin(p)
	if err != nil {
		return nil, err
	}

	agents, err := s.storage.CountAgents(ctx, companyID)
	if err != nil {
		return nil, err
	}

	active, resolved, err := s.storage.CountTickets(ctx, companyID)
	if err != nil {
		return nil, err
	}

	recent, err := s.storage.ListTickets(ctx, types.TicketScope{CompanyID: companyID}, types.TicketFilter{Limit: recentTicketsLimit})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*types.Ticket{}
	}

	return &types.CompanyStats{
		TotalAgents:     agents,
		ActiveTickets:   active,
		ResolvedTickets: resolved,
		RecentTickets:   recent,
	}, nil
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	objects ObjectStorageInterface,
	logoBucket string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		authz:      authz,
		objects:    objects,
		logoBucket: logoBucket,
		now:        time.Now,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
