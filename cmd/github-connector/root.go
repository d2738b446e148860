package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/giantswarm/social-connector/configsource"
	"github.com/giantswarm/social-connector/httpclient"
	"github.com/giantswarm/social-connector/providers"
	"github.com/giantswarm/social-connector/providers/github"
	"github.com/giantswarm/social-connector/security"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configFile   string
	envPrefix    string
	sealedConfig string
	timeout      time.Duration
	rateLimit    float64
	logLevel     string
	audit        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "github-connector",
		Short: "Drive the GitHub social login connector",
		Long: `github-connector runs the operations of the GitHub social login connector:
validating a stored configuration, building the authorization URL, exchanging
an authorization code and fetching the user profile.

Credentials are read from --config-file (YAML), from --sealed-config or from
<PREFIX>GITHUB_UNIVERSAL_CLIENT_ID / _CLIENT_SECRET environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config-file", "", "YAML file holding connector configs and requestTimeout")
	flags.StringVar(&opts.envPrefix, "env-prefix", configsource.DefaultEnvPrefix, "prefix of the environment variables")
	flags.StringVar(&opts.sealedConfig, "sealed-config", "", "encrypted connector config produced by the seal command; the master key is read from <PREFIX>MASTER_KEY")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout; overrides the configured one")
	flags.Float64Var(&opts.rateLimit, "rate-limit", 0, "maximum GitHub requests per second (0 disables limiting)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.audit, "audit", false, "write security audit events to the log")

	cmd.AddCommand(
		newMetadataCmd(),
		newValidateCmd(opts),
		newAuthorizeURLCmd(opts),
		newExchangeCmd(opts),
		newUserInfoCmd(opts),
		newSealCmd(opts),
	)

	return cmd
}

func (o *options) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func (o *options) masterKey() ([]byte, error) {
	name := o.envPrefix + "MASTER_KEY"
	encoded := os.Getenv(name)
	if encoded == "" {
		return nil, fmt.Errorf("%s is not set", name)
	}
	key, err := security.KeyFromBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return key, nil
}

func (o *options) configProvider() (providers.ConfigProvider, error) {
	switch {
	case o.sealedConfig != "":
		key, err := o.masterKey()
		if err != nil {
			return nil, err
		}
		sealed, err := configsource.NewSealed(key)
		if err != nil {
			return nil, err
		}
		sealed.Set(github.ConnectorID, o.sealedConfig)
		return sealed, nil
	case o.configFile != "":
		return configsource.NewFile(o.configFile), nil
	default:
		return configsource.NewEnv(o.envPrefix), nil
	}
}

func (o *options) timeoutProvider(cmd *cobra.Command) providers.TimeoutProvider {
	switch {
	case cmd.Flags().Changed("timeout"):
		return configsource.FixedTimeout(o.timeout)
	case o.configFile != "":
		return configsource.NewFile(o.configFile)
	default:
		return configsource.NewEnvTimeout(o.envPrefix)
	}
}

// connector builds the GitHub connector from the persistent flags.
func (o *options) connector(cmd *cobra.Command) (*github.Connector, error) {
	logger, err := o.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	configs, err := o.configProvider()
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if o.rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(o.rateLimit), 1)
	}

	return github.NewConnector(&github.Options{
		ConfigProvider:  configs,
		TimeoutProvider: o.timeoutProvider(cmd),
		HTTPClient: httpclient.New(&httpclient.Config{
			Provider:    github.Target,
			RateLimiter: limiter,
			Logger:      logger,
		}),
		Logger:  logger,
		Auditor: security.NewAuditor(logger, o.audit),
	})
}
