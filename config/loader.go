package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/paygate/logger"
)

// EnvPrefix prefixes the environment variables that override pay settings,
// e.g. PAY_PROVIDER_UID overrides pay.provider_uid.
const EnvPrefix = "PAY"

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// configPaths lists the config files searched for name, in order.
func configPaths(name string) []string {
	paths := []string{
		fmt.Sprintf("./%s.yml", name),
		"./config.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, name, "config.yml"))
	}
	return paths
}

// envPaths lists the .env files searched for name, in order.
func envPaths(name string) []string {
	return []string{fmt.Sprintf("./.env.%s", name), "./.env"}
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// read resolves the config and .env files for name and unmarshals them into
// cfg. Environment variables win over the config file. Missing files are not
// an error.
func read(name string, cfg *Config, lc LoaderConfig) error {
	configFile := lc.ConfigFile
	if configFile == "" {
		configFile = firstExisting(configPaths(name))
	}
	envFile := lc.EnvFile
	if envFile == "" {
		envFile = firstExisting(envPaths(name))
	}

	v := viper.New()
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				logger.Warn("failed to load config file", logger.Fields("file", configFile, logger.FieldError, err.Error()))
			}
		}
	}

	// .env values never replace variables already set in the process.
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				logger.Warn("failed to load .env file", logger.Fields("file", envFile, logger.FieldError, err.Error()))
			}
		}
	}

	if err := bindEnv(v); err != nil {
		return err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for %s: %w", name, err)
	}
	return nil
}

// bindEnv maps PAY_<FIELD> onto pay.<field> for every Settings field, and
// the logger's LOG_LEVEL and LOG_FORMAT onto the logging section.
func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"logging.level":  "LOG_LEVEL",
		"logging.format": "LOG_FORMAT",
	}
	for _, key := range settingsKeys() {
		bindings["pay."+key] = EnvPrefix + "_" + strings.ToUpper(key)
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// settingsKeys returns the mapstructure keys of Settings.
func settingsKeys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("mapstructure"); tag != "" && tag != "-" {
			keys = append(keys, tag)
		}
	}
	return keys
}
