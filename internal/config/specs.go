// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the environment configuration needed for the backend to start
type EnvSpec struct {
	OtelGRPCEndpoint   string  `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint   string  `envconfig:"otel_http_endpoint"`
	TracingEnabled     bool    `envconfig:"tracing_enabled" default:"true"`
	TracingSampleRatio float64 `envconfig:"tracing_sample_ratio" default:"1"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port           int      `envconfig:"port" default:"8080" validate:"min=1,max=65535"`
	AllowedOrigins []string `envconfig:"allowed_origins" default:"*"`

	// ServicePublicKey is the key every client must present in the apikey header.
	ServicePublicKey string `envconfig:"service_public_key" validate:"required"`

	KratosPublicURL string `envconfig:"kratos_public_url" validate:"required,url"`
	KratosAdminURL  string `envconfig:"kratos_admin_url" validate:"required,url"`

	JWTIssuer          string   `envconfig:"jwt_issuer" validate:"omitempty,url"`
	JWKSURL            string   `envconfig:"jwks_url" validate:"omitempty,url"`
	JWTAllowedSubjects []string `envconfig:"jwt_allowed_subjects"`
	JWTRequiredScope   string   `envconfig:"jwt_required_scope"`

	InviteLifetime time.Duration `envconfig:"invite_lifetime" default:"168h"`

	DSN string `envconfig:"DSN" validate:"required"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
	DBTxTimeout       time.Duration `envconfig:"db_tx_timeout" default:"60s"`

	AuthorizationEnabled bool   `envconfig:"authorization_enabled" default:"false"`
	OpenfgaApiScheme     string `envconfig:"openfga_api_scheme" default:""`
	OpenfgaApiHost       string `envconfig:"openfga_api_host" validate:"required_if=AuthorizationEnabled true"`
	OpenfgaApiToken      string `envconfig:"openfga_api_token"`
	OpenfgaStoreId       string `envconfig:"openfga_store_id" validate:"required_if=AuthorizationEnabled true"`
	OpenfgaModelId       string `envconfig:"openfga_authorization_model_id" default:""`

	ObjectStorageEndpoint  string `envconfig:"object_storage_endpoint"`
	ObjectStorageAccessKey string `envconfig:"object_storage_access_key"`
	ObjectStorageSecretKey string `envconfig:"object_storage_secret_key"`
	ObjectStorageUseSSL    bool   `envconfig:"object_storage_use_ssl" default:"true"`
	ObjectStoragePublicURL string `envconfig:"object_storage_public_url" validate:"omitempty,url"`
	LogoBucket             string `envconfig:"logo_bucket" default:"company-logos"`

	KafkaBrokers     []string `envconfig:"kafka_brokers"`
	KafkaTicketTopic string   `envconfig:"kafka_ticket_topic" default:"autocrm.tickets"`
}

// ClientSpec is the configuration of the command line client. The service URL
// and public key are the only values without a default.
type ClientSpec struct {
	ServiceURL string `envconfig:"service_url" validate:"required,url"`
	ServiceKey string `envconfig:"service_key" validate:"required"`

	// AuthURL is the public URL of the authentication service, the service URL when empty.
	AuthURL     string        `envconfig:"auth_url" validate:"omitempty,url"`
	SessionFile string        `envconfig:"session_file"`
	Timeout     time.Duration `envconfig:"timeout" default:"30s"`
	LogLevel    string        `envconfig:"log_level" default:"error"`

	// RefreshInterval is how often the stored session is re-validated, zero disables it.
	RefreshInterval time.Duration `envconfig:"refresh_interval" default:"1m"`
}

// AuthEndpoint returns the authentication service URL.
func (c *ClientSpec) AuthEndpoint() string {
	if c.AuthURL != "" {
		return c.AuthURL
	}
	return c.ServiceURL
}
