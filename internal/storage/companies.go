// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/autocrm/internal/types"
)

var companyColumns = []string{
	"id", "name", "industry", "description", "website", "support_email", "phone",
	"address", "city", "state", "country", "postal_code", "logo_url", "is_verified", "admin_id", "created_at",
}

func scanCompany(row sq.RowScanner) (*types.Company, error) {
	var c types.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Industry, &c.Description, &c.Website, &c.SupportEmail, &c.Phone,
		&c.Address, &c.City, &c.State, &c.Country, &c.PostalCode, &c.LogoURL, &c.IsVerified, &c.AdminID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a new, unverified company.
func (s *Storage) CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCompany")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("companies").
		Columns(
			"id", "name", "industry", "description", "website", "support_email", "phone",
			"address", "city", "state", "country", "postal_code", "is_verified", "admin_id",
		).
		Values(
			id.String(), c.Name, c.Industry, c.Description, c.Website, c.SupportEmail, c.Phone,
			c.Address, c.City, c.State, c.Country, c.PostalCode, false, c.AdminID,
		).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		QueryRowContext(ctx)

	created, err := scanCompany(row)
	if err != nil {
		return nil, writeError(err, "insert company")
	}

	return created, nil
}

func (s *Storage) GetCompany(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompany")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	c, err := scanCompany(row)
	if err != nil {
		return nil, readError(err, "get company")
	}

	return c, nil
}

func (s *Storage) GetCompanyByAdmin(ctx context.Context, adminID string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompanyByAdmin")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"admin_id": adminID}).
		QueryRowContext(ctx)

	c, err := scanCompany(row)
	if err != nil {
		return nil, readError(err, "get company by admin")
	}

	return c, nil
}

func (s *Storage) ListVerifiedCompanies(ctx context.Context) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListVerifiedCompanies")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"is_verified": true}).
		OrderBy("name ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*types.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

func companySettingsMap(settings types.CompanySettings) map[string]interface{} {
	updateMap := make(map[string]interface{})
	fields := map[string]*string{
		"name":          settings.Name,
		"industry":      settings.Industry,
		"description":   settings.Description,
		"website":       settings.Website,
		"support_email": settings.SupportEmail,
		"phone":         settings.Phone,
		"address":       settings.Address,
		"city":          settings.City,
		"state":         settings.State,
		"country":       settings.Country,
		"postal_code":   settings.PostalCode,
	}
	for column, value := range fields {
		if value != nil {
			updateMap[column] = *value
		}
	}
	return updateMap
}

// UpdateCompany follows PATCH semantics: only the non nil settings are written.
func (s *Storage) UpdateCompany(ctx context.Context, id string, settings types.CompanySettings) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCompany")
	defer span.End()

	updateMap := companySettingsMap(settings)
	if len(updateMap) == 0 {
		return s.GetCompany(ctx, id)
	}

	row := s.db.Statement(ctx).
		Update("companies").
		SetMap(updateMap).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		QueryRowContext(ctx)

	c, err := scanCompany(row)
	if err != nil {
		return nil, readError(err, "update company")
	}

	return c, nil
}

func (s *Storage) SetCompanyLogo(ctx context.Context, id, logo string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetCompanyLogo")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("companies").
		Set("logo_url", logo).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update company logo: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
