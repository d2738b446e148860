package configsource

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/giantswarm/social-connector/providers"
)

// DefaultEnvPrefix is the variable prefix used when none is given.
const DefaultEnvPrefix = "SOCIAL_CONNECTOR_"

// Compile-time checks
var (
	_ providers.ConfigProvider  = (*Env)(nil)
	_ providers.TimeoutProvider = (*EnvTimeout)(nil)
)

type envCredentials struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type envTimeout struct {
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,required"`
}

// Env reads connector credentials from environment variables named
// <prefix><CONNECTOR>_CLIENT_ID and <prefix><CONNECTOR>_CLIENT_SECRET, where
// CONNECTOR is the connector ID upper-cased with dashes turned into
// underscores: SOCIAL_CONNECTOR_GITHUB_UNIVERSAL_CLIENT_ID.
type Env struct {
	prefix  string
	environ func() []string
}

// NewEnv creates an Env provider. An empty prefix selects DefaultEnvPrefix.
func NewEnv(prefix string) *Env {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &Env{prefix: prefix, environ: os.Environ}
}

// GetConfig implements providers.ConfigProvider. Unset or empty variables are
// left out of the returned config so validation reports them as missing.
func (e *Env) GetConfig(_ context.Context, connectorID string) (any, error) {
	var creds envCredentials
	err := env.ParseWithOptions(&creds, env.Options{
		Prefix:      e.prefix + envName(connectorID) + "_",
		Environment: env.ToMap(e.environ()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s config from environment: %w", connectorID, err)
	}

	if creds.ClientID == "" && creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, connectorID)
	}

	raw := make(map[string]any, 2)
	if creds.ClientID != "" {
		raw["clientId"] = creds.ClientID
	}
	if creds.ClientSecret != "" {
		raw["clientSecret"] = creds.ClientSecret
	}
	return raw, nil
}

// EnvTimeout reads the request timeout from <prefix>REQUEST_TIMEOUT, e.g.
// SOCIAL_CONNECTOR_REQUEST_TIMEOUT=10s. The variable is required.
type EnvTimeout struct {
	prefix  string
	environ func() []string
}

// NewEnvTimeout creates an EnvTimeout provider. An empty prefix selects DefaultEnvPrefix.
func NewEnvTimeout(prefix string) *EnvTimeout {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvTimeout{prefix: prefix, environ: os.Environ}
}

// RequestTimeout implements providers.TimeoutProvider.
func (e *EnvTimeout) RequestTimeout(context.Context) (time.Duration, error) {
	var cfg envTimeout
	err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      e.prefix,
		Environment: env.ToMap(e.environ()),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read request timeout from environment: %w", err)
	}
	if cfg.RequestTimeout < 0 {
		return 0, fmt.Errorf("request timeout must not be negative, got %s", cfg.RequestTimeout)
	}
	return cfg.RequestTimeout, nil
}

// envName turns a connector ID into an environment variable segment.
func envName(connectorID string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(connectorID))
}
