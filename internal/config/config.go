package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Host             string `mapstructure:"host"`
	Port             int    `mapstructure:"port"`
	Auth             string `mapstructure:"auth"`
	CacheTTL         int    `mapstructure:"cacheTtl"`
	WriteAttempts    int    `mapstructure:"writeAttempts"`
	RequestTimeout   int    `mapstructure:"requestTimeout"`
	ThrottleMs       int    `mapstructure:"throttleMs"`
	DiscoveryTimeout int    `mapstructure:"discoveryTimeout"`
	LogFile          string `mapstructure:"logFile"`
	LogLevel         string `mapstructure:"logLevel"`
	DBPath           string `mapstructure:"dbPath"`
}

func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

func (c Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c Config) ThrottleInterval() time.Duration {
	return time.Duration(c.ThrottleMs) * time.Millisecond
}

func (c Config) DiscoveryTimeoutDuration() time.Duration {
	return time.Duration(c.DiscoveryTimeout) * time.Second
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 51826)
	v.SetDefault("auth", "")
	v.SetDefault("cacheTtl", 30)
	v.SetDefault("writeAttempts", 3)
	v.SetDefault("requestTimeout", 10)
	v.SetDefault("throttleMs", 100)
	v.SetDefault("discoveryTimeout", 5)
	v.SetDefault("logFile", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("dbPath", ":memory:")
}

// Flags registers a command line flag for each config key.
func Flags(fs *pflag.FlagSet) {
	fs.String("host", "localhost", "hub host")
	fs.Int("port", 51826, "hub port")
	fs.String("auth", "", "hub authorization token (the pin)")
	fs.Int("cacheTtl", 30, "seconds before the accessory list is refreshed")
	fs.Int("writeAttempts", 3, "attempts per characteristic write")
	fs.Int("requestTimeout", 10, "seconds before an HTTP request to the hub is abandoned")
	fs.Int("throttleMs", 100, "pause between writes when switching everything off")
	fs.Int("discoveryTimeout", 5, "seconds to browse for hubs")
	fs.String("logFile", "", "write logs to this file instead of stderr")
	fs.String("logLevel", "info", "debug, info, warn or error")
	fs.String("dbPath", ":memory:", "sqlite database for the reachability ledger")
}

// ReadConfig loads the config file (if any), environment (HOMIE_*) and any
// flags that were set, in increasing order of precedence.
func ReadConfig(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults(v)

	v.SetConfigName("config")               // name of config file (without extension)
	v.AddConfigPath("/etc/homie/")          // path to look for the config file in
	v.AddConfigPath("$HOME/.config/homie/") // call multiple times to add many search paths
	v.AddConfigPath(".")                    // optionally look for config in the working directory

	v.SetEnvPrefix("homie")
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("error binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// flags and the environment are enough on their own
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("config: host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config: cacheTtl must not be negative")
	}
	if c.WriteAttempts < 1 {
		return fmt.Errorf("config: writeAttempts must be at least 1")
	}
	return nil
}
