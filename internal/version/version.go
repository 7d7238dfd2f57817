// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package version

// Version is overridden at build time with -ldflags "-X github.com/canonical/autocrm/internal/version.Version=..."
var Version = "0.1.0"
