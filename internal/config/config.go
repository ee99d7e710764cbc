// Package config loads hwprint settings from flags, HWPRINT_ environment
// variables and a TOML file, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/hwprint/internal/collector"
	"codeberg.org/mutker/hwprint/internal/errors"
	"codeberg.org/mutker/hwprint/internal/logger"
	"codeberg.org/mutker/hwprint/internal/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "HWPRINT"
	configName = "hwprint"
	configType = "toml"

	DefaultLogLevel       = "info"
	DefaultBatteryTimeout = 250 * time.Millisecond
	DefaultDatabase       = "/var/lib/hwprint/reports.db"
)

// Configuration keys.
const (
	KeyLogLevel       = "log_level"
	KeyBatteryTimeout = "battery_timeout"
	KeySignatures     = "signatures"
	KeyStore          = "store"
	KeyDatabase       = "database"
	KeyPretty         = "pretty"
)

// flagNames maps configuration keys to their command line flags.
var flagNames = map[string]string{
	KeyLogLevel:       "log-level",
	KeyBatteryTimeout: "battery-timeout",
	KeySignatures:     "signatures",
	KeyStore:          "store",
	KeyDatabase:       "database",
	KeyPretty:         "pretty",
}

type Config struct {
	LogLevel       string
	BatteryTimeout time.Duration
	Signatures     string
	Store          bool
	Database       string
	Pretty         bool
}

// AddFlags registers the shared flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(flagNames[KeyLogLevel], DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Duration(flagNames[KeyBatteryTimeout], DefaultBatteryTimeout, "Time to wait for a battery source")
	fs.String(flagNames[KeySignatures], "", "Path to a YAML signature database (default: embedded)")
	fs.Bool(flagNames[KeyStore], false, "Save reports to the database")
	fs.String(flagNames[KeyDatabase], DefaultDatabase, "Path to the report database")
	fs.Bool(flagNames[KeyPretty], false, "Indent JSON output")
}

// Load merges the config file, the environment and the flags that were set
// on fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyBatteryTimeout, DefaultBatteryTimeout)
	v.SetDefault(KeySignatures, "")
	v.SetDefault(KeyStore, false)
	v.SetDefault(KeyDatabase, DefaultDatabase)
	v.SetDefault(KeyPretty, false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	if fs != nil {
		for key, name := range flagNames {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	cfg := &Config{
		LogLevel:       v.GetString(KeyLogLevel),
		BatteryTimeout: v.GetDuration(KeyBatteryTimeout),
		Signatures:     v.GetString(KeySignatures),
		Store:          v.GetBool(KeyStore),
		Database:       v.GetString(KeyDatabase),
		Pretty:         v.GetBool(KeyPretty),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readConfigFile reads HWPRINT_CONFIG when set, otherwise the first
// hwprint.toml found in the search path. A missing default file is not an
// error.
func readConfigFile(v *viper.Viper) error {
	errFactory := errors.New()

	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath("/etc")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return errFactory.WithData(errors.ErrInvalidLogLevel, struct {
			Level string
		}{
			Level: c.LogLevel,
		})
	}

	if c.BatteryTimeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidTimeout, struct {
			Timeout time.Duration
		}{
			Timeout: c.BatteryTimeout,
		})
	}

	if err := c.StoreConfig().Validate(); err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logger.LogLevel {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

func (c *Config) CollectorConfig() collector.Config {
	return collector.Config{BatteryTimeout: c.BatteryTimeout}
}

func (c *Config) StoreConfig() store.Config {
	return store.Config{
		DBPath:  c.Database,
		Enabled: c.Store,
	}
}
