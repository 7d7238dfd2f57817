// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/autocrm/internal/types"
)

func (s *Storage) GetRole(ctx context.Context, userID string) (types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetRole")
	defer span.End()

	var role types.Role
	err := s.db.Statement(ctx).
		Select("role").
		From("user_roles").
		Where(sq.Eq{"user_id": userID}).
		QueryRowContext(ctx).
		Scan(&role)

	if err != nil {
		return types.RoleNone, readError(err, "get role")
	}

	return role, nil
}

// SetRole assigns role to the user, replacing any previous assignment.
func (s *Storage) SetRole(ctx context.Context, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetRole")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("user_roles").
		Columns("user_id", "role").
		Values(userID, role).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}
