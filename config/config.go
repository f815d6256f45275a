// Package config loads container settings from a YAML file, a .env file and
// the environment.
//
// Precedence, lowest first: defaults, the YAML file, variables from the .env
// file, the process environment. Environment variables use the TINYDI_
// prefix (TINYDI_STRICT, TINYDI_LOG_LEVEL). The .env file is read, not
// exported: Load never modifies the process environment, and variables already
// present there take precedence over the file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TINYDI"

// Container holds the settings of a tinydi container.
type Container struct {
	// Strict makes duplicate single registrations fail.
	Strict bool `mapstructure:"strict" yaml:"strict"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() Container {
	return Container{
		Strict:   false,
		LogLevel: "info",
	}
}

// Logger builds a production zap logger at the configured level.
func (c Container) Logger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
		}
		level = parsed
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

// LoaderConfig holds optional file locations.
type LoaderConfig struct {
	ConfigFile string // YAML config file path (optional)
	EnvFile    string // .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets the YAML config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets the .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads container settings. Missing files are errors only when their
// path was given explicitly.
func Load(opts ...LoaderOption) (Container, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	defaults := Default()

	v := viper.New()
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("log_level", defaults.LogLevel)

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Container{}, fmt.Errorf("failed to read config file %s: %w", lc.ConfigFile, err)
		}
	}

	if lc.EnvFile != "" {
		vars, err := godotenv.Read(lc.EnvFile)
		if err != nil {
			return Container{}, fmt.Errorf("failed to load env file %s: %w", lc.EnvFile, err)
		}
		applyEnvFile(v, vars)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Container
	if err := v.Unmarshal(&cfg); err != nil {
		return Container{}, fmt.Errorf("failed to unmarshal container config: %w", err)
	}

	return cfg, nil
}

// applyEnvFile feeds the prefixed variables of a .env file to v. The process
// environment is left untouched, and variables already set there win.
func applyEnvFile(v *viper.Viper, vars map[string]string) {
	prefix := EnvPrefix + "_"
	for name, value := range vars {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(strings.ToLower(strings.TrimPrefix(name, prefix)), value)
	}
}
