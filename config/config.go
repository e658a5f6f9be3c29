package config

import (
	"fmt"

	"github.com/kbukum/paygate/logger"
	"github.com/kbukum/paygate/observability"
)

// Config is the configuration of a host embedding paygate.
//
// Example config.yml:
//
//	name: blog
//	pay:
//	  provider_uid: acme
//	  staging_key: |
//	    -----BEGIN PUBLIC KEY-----
//	    ...
//	  staging_token: s3cret
//	logging:
//	  level: debug
type Config struct {
	Name        string                     `yaml:"name" mapstructure:"name"`
	Environment string                     `yaml:"environment" mapstructure:"environment"`
	Pay         Settings                   `yaml:"pay" mapstructure:"pay"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics     observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults applies default values. The environment follows the pay
// settings unless set explicitly.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "paygate"
	}
	c.Pay.ApplyDefaults()
	if c.Environment == "" {
		c.Environment = c.Pay.Environment()
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	if c.Tracing == (observability.TracerConfig{}) {
		c.Tracing = observability.DefaultTracerConfig(c.Name)
		c.Tracing.Environment = c.Environment
	}
	if c.Metrics == (observability.MeterConfig{}) {
		c.Metrics = observability.DefaultMeterConfig(c.Name)
		c.Metrics.Environment = c.Environment
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Name
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Pay.Validate(); err != nil {
		return fmt.Errorf("config.pay: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Load reads configuration for name, applies defaults and validates it.
//
// Without explicit files it reads the first of ./<name>.yml, ./config.yml
// and <user config dir>/<name>/config.yml, and the first of ./.env.<name>
// and ./.env. PAY_* environment variables override the pay section.
func Load(name string, opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	var cfg Config
	if err := read(name, &cfg, lc); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
