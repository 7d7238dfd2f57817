// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/autocrm/internal/http/types"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/internal/version"
)

const pingTimeout = 2 * time.Second

// PingerInterface is implemented by dependencies the status endpoint probes.
type PingerInterface interface {
	Ping(context.Context) error
}

type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type BuildInfo struct {
	Version string `json:"version"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/api/v0/status", a.alive)
	r.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	status := Status{Status: "ok", Database: "ok"}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	available := 1.0
	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		status = Status{Status: "degraded", Database: "unavailable"}
		code = http.StatusServiceUnavailable
		available = 0
	}

	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); err != nil {
		a.logger.Debugf("error setting database availability metric: %s", err)
	}

	httptypes.WriteJSON(w, code, status)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, BuildInfo{Version: version.Version})
}

func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
