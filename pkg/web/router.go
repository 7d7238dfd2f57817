// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/autocrm/internal/db"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/pkg/agents"
	"github.com/canonical/autocrm/pkg/authentication"
	"github.com/canonical/autocrm/pkg/companies"
	"github.com/canonical/autocrm/pkg/metrics"
	"github.com/canonical/autocrm/pkg/profile"
	"github.com/canonical/autocrm/pkg/status"
	"github.com/canonical/autocrm/pkg/tickets"
	"github.com/canonical/autocrm/pkg/webhooks"
)

// Config holds the router settings sourced from the environment.
type Config struct {
	ServicePublicKey string
	KratosPublicURL  string
	AllowedOrigins   []string
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Tickets   tickets.ServiceInterface
	Companies companies.ServiceInterface
	Agents    agents.ServiceInterface
	Webhooks  webhooks.ServiceInterface
}

func NewRouter(
	cfg Config,
	services Services,
	authn *authentication.Middleware,
	principals *identity.Middleware,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (http.Handler, error) {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.AllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)

	if cfg.KratosPublicURL != "" {
		proxy, err := newKratosProxy(cfg.KratosPublicURL, logger)
		if err != nil {
			return nil, err
		}
		router.Handle("/self-service/*", proxy)
		router.Handle("/sessions/*", proxy)
	}

	companiesAPI := companies.NewAPI(services.Companies, logger)

	router.Group(func(r chi.Router) {
		r.Use(authn.RequireAPIKey(cfg.ServicePublicKey))
		r.Use(db.TransactionMiddleware(dbClient, logger))

		webhooks.NewAPI(services.Webhooks, logger).RegisterEndpoints(r)
		companiesAPI.RegisterPublicEndpoints(r)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate())
			r.Use(principals.HTTPMiddleware)

			profile.NewAPI().RegisterEndpoints(r)
			tickets.NewAPI(services.Tickets, logger).RegisterEndpoints(r)
			companiesAPI.RegisterEndpoints(r)
			agents.NewAPI(services.Agents, logger).RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router), nil
}
