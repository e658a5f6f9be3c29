package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/paygate/config"
	"github.com/kbukum/paygate/errors"
	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
	"github.com/kbukum/paygate/sdk"
	"github.com/kbukum/paygate/version"
)

const serviceName = "paygate"

// app holds the state shared by the commands of one invocation.
type app struct {
	configFile string
	envFile    string
	telemetry  bool

	cfg      *config.Config
	pay      *sdk.SDK
	shutdown []func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Pay entitlement tokens and API from the command line",
		Long:          `paygate mints item tokens, verifies inbound entitlement tokens and registers items with the pay API using the configured provider credentials.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default: ./paygate.yml, ./config.yml, then the user config dir)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", ".env file (default: search .env.paygate, .env)")
	root.PersistentFlags().BoolVar(&a.telemetry, "telemetry", false, "export traces and metrics over OTLP")

	root.AddCommand(
		newItemTokenCmd(a),
		newVerifyCmd(a),
		newRegisterCmd(a),
		newUpdateCmd(a),
		newCheckCredentialsCmd(a),
		newVersionCmd(),
	)
	return root
}

// config loads the configuration once and installs the global logger.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		return nil, err
	}
	logger.SetGlobalLogger(logger.New(&cfg.Logging, cfg.Name))
	a.cfg = cfg
	return cfg, nil
}

// sdk builds the SDK from the loaded settings.
func (a *app) sdk(ctx context.Context) (*sdk.SDK, error) {
	if a.pay != nil {
		return a.pay, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	if missing := cfg.Pay.MissingCredentials(); len(missing) > 0 {
		return nil, errors.MissingField(missing[0]).WithDetail("missing", missing)
	}

	opts := []sdk.Option{sdk.WithLogger(logger.GetGlobalLogger())}
	if a.telemetry {
		metrics, err := a.startTelemetry(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdk.WithMetrics(metrics))
	}

	pay, err := sdk.FromSettings(cfg.Pay, opts...)
	if err != nil {
		return nil, err
	}
	a.pay = pay
	return pay, nil
}

func (a *app) startTelemetry(ctx context.Context, cfg *config.Config) (*observability.Metrics, error) {
	tp, err := observability.InitTracer(ctx, &cfg.Tracing)
	if err != nil {
		return nil, err
	}
	a.shutdown = append(a.shutdown, tp.Shutdown)
	mp, err := observability.InitMeter(ctx, &cfg.Metrics)
	if err != nil {
		return nil, err
	}
	a.shutdown = append(a.shutdown, mp.Shutdown)
	return observability.NewMetrics(observability.Meter(serviceName))
}

// close flushes telemetry and releases the SDK.
func (a *app) close(ctx context.Context) error {
	if a.pay != nil {
		a.pay.Close()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var firstErr error
	for _, fn := range a.shutdown {
		if err := fn(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("telemetry shutdown: %w", err)
		}
	}
	return firstErr
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
