// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ClientPrefix namespaces every client variable, e.g. AUTOCRM_SERVICE_URL.
const ClientPrefix = "autocrm"

var (
	ErrMissingConfig = errors.New("missing required configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NewEnvSpec sources the backend configuration from the environment.
func NewEnvSpec() (*EnvSpec, error) {
	specs := new(EnvSpec)
	if err := load("", specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// NewClientSpec sources the client configuration from the environment.
func NewClientSpec() (*ClientSpec, error) {
	specs := new(ClientSpec)
	if err := load(ClientPrefix, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// LoadDotEnv loads the first readable file among paths into the environment.
// Variables already set win over the file. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func load(prefix string, spec interface{}) error {
	if err := envconfig.Process(prefix, spec); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}
	return validate(prefix, spec)
}

// validate reports every failing variable at once, naming them as they
// appear in the environment.
func validate(prefix string, spec interface{}) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return envName(prefix, f)
	})

	err := v.Struct(spec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			missing = append(missing, fe.Field())
		default:
			invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(invalid, ", "))
}

func envName(prefix string, f reflect.StructField) string {
	name := f.Tag.Get("envconfig")
	if name == "" {
		name = f.Name
	}
	if prefix != "" {
		name = prefix + "_" + name
	}
	return strings.ToUpper(name)
}
