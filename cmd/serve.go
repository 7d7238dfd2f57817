// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/autocrm/internal/authorization"
	"github.com/canonical/autocrm/internal/config"
	"github.com/canonical/autocrm/internal/db"
	"github.com/canonical/autocrm/internal/events"
	"github.com/canonical/autocrm/internal/identity"
	"github.com/canonical/autocrm/internal/kratos"
	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring/prometheus"
	"github.com/canonical/autocrm/internal/objects"
	"github.com/canonical/autocrm/internal/openfga"
	"github.com/canonical/autocrm/internal/storage"
	"github.com/canonical/autocrm/internal/tracing"
	"github.com/canonical/autocrm/pkg/agents"
	"github.com/canonical/autocrm/pkg/authentication"
	"github.com/canonical/autocrm/pkg/companies"
	"github.com/canonical/autocrm/pkg/tickets"
	"github.com/canonical/autocrm/pkg/web"
	"github.com/canonical/autocrm/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the AutoCRM API, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newAuthorizer(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor *prometheus.Monitor, logger logging.LoggerInterface) (*authorization.Authorizer, error) {
	if !specs.AuthorizationEnabled {
		logger.Info("Using noop authorizer")
		return authorization.NewAuthorizer(openfga.NewNoopClient(tracer, monitor, logger), tracer, monitor, logger), nil
	}

	ofga := openfga.NewClient(
		openfga.NewConfig(
			specs.OpenfgaApiScheme,
			specs.OpenfgaApiHost,
			specs.OpenfgaStoreId,
			specs.OpenfgaApiToken,
			specs.OpenfgaModelId,
			specs.Debug,
			tracer,
			monitor,
			logger,
		),
	)
	authorizer := authorization.NewAuthorizer(ofga, tracer, monitor, logger)
	logger.Info("Authorization is enabled")

	if err := authorizer.ValidateModel(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid authorization model provided: %w", err)
	}
	return authorizer, nil
}

func newVerifier(ctx context.Context, specs *config.EnvSpec, tracer tracing.TracingInterface, monitor *prometheus.Monitor, logger logging.LoggerInterface) (authentication.TokenVerifierInterface, error) {
	sessions := kratos.NewFrontendClient(specs.KratosPublicURL, nil, tracer, monitor, logger)

	return authentication.NewVerifier(
		ctx,
		authentication.Config{
			Issuer:          specs.JWTIssuer,
			JWKSURL:         specs.JWKSURL,
			AllowedSubjects: specs.JWTAllowedSubjects,
			RequiredScope:   specs.JWTRequiredScope,
		},
		sessions,
		tracer,
		monitor,
		logger,
	)
}

func newObjectStore(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor *prometheus.Monitor, logger logging.LoggerInterface) (companies.ObjectStorageInterface, error) {
	if specs.ObjectStorageEndpoint == "" {
		logger.Info("no object storage configured, logo uploads are disabled")
		return objects.NewNoopStore(), nil
	}

	return objects.NewStore(
		objects.Config{
			Endpoint:  specs.ObjectStorageEndpoint,
			AccessKey: specs.ObjectStorageAccessKey,
			SecretKey: specs.ObjectStorageSecretKey,
			UseSSL:    specs.ObjectStorageUseSSL,
			PublicURL: specs.ObjectStoragePublicURL,
		},
		tracer,
		monitor,
		logger,
	)
}

func serve() error {
	specs, err := config.NewEnvSpec()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("autocrm", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TxTimeout:       specs.DBTxTimeout,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	authorizer, err := newAuthorizer(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	verifier, err := newVerifier(context.Background(), specs, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to set up token verification: %w", err)
	}

	objectStore, err := newObjectStore(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	publisher := events.NewPublisher(specs.KafkaBrokers, specs.KafkaTicketTopic, tracer, monitor, logger)
	defer publisher.Close()

	kratosClient := kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)

	services := web.Services{
		Tickets:   tickets.NewService(s, authorizer, publisher, tracer, monitor, logger),
		Companies: companies.NewService(s, authorizer, objectStore, specs.LogoBucket, tracer, monitor, logger),
		Agents:    agents.NewService(s, dbClient, authorizer, kratosClient, specs.InviteLifetime, tracer, monitor, logger),
		Webhooks:  webhooks.NewService(s, kratosClient, tracer, monitor, logger),
	}

	router, err := web.NewRouter(
		web.Config{
			ServicePublicKey: specs.ServicePublicKey,
			KratosPublicURL:  specs.KratosPublicURL,
			AllowedOrigins:   specs.AllowedOrigins,
		},
		services,
		authentication.NewMiddleware(verifier, tracer, monitor, logger),
		identity.NewMiddleware(s, tracer, monitor, logger),
		dbClient,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return err
	}

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
