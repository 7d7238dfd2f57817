// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package objects

import (
	"context"
	"io"
)

type StorageInterface interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error
	PublicURL(bucket, path string) string
}
