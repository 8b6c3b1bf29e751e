// Package config loads settings from defaults, a config file, the environment
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// Name is the config file base name and environment prefix.
	Name = "tf2metrics"

	DefaultRefreshInterval = 3 * time.Second
	DefaultRosterTimeout   = 3 * time.Second
	DefaultDB              = "tf2_weapons.db"
)

type RosterConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MetricsConfig struct {
	// Addr to serve /metrics on; empty disables the endpoint.
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Config struct {
	User            string        `mapstructure:"user"`
	LogPath         string        `mapstructure:"log_path"`
	DB              string        `mapstructure:"db"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Roster          RosterConfig  `mapstructure:"roster"`
	Metrics         MetricsConfig `mapstructure:"metrics"`
	Log             LogConfig     `mapstructure:"logging"`
}

// Validate checks values that have no usable fallback.
func (c Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.Roster.Enabled && c.Roster.Timeout <= 0 {
		return fmt.Errorf("roster.timeout must be positive, got %s", c.Roster.Timeout)
	}
	if c.DB == "" {
		return errors.New("db path not set")
	}
	return nil
}

// RequireMatchInput checks the settings needed to locate the current match.
func (c Config) RequireMatchInput() error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("user not set: pass --user or set user in tf2metrics.yaml")
	}
	if c.LogPath == "" {
		return errors.New("log path not set: pass --log or set log_path in tf2metrics.yaml")
	}
	return nil
}

// DefaultLogPath is where the game writes its console log with -condebug.
func DefaultLogPath() string {
	if runtime.GOOS == "windows" {
		return `C:\Program Files (x86)\Steam\steamapps\common\Team Fortress 2\tf\console.log`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "console.log"
	}
	return filepath.Join(home, ".steam", "steam", "steamapps", "common", "Team Fortress 2", "tf", "console.log")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("user", "")
	v.SetDefault("log_path", DefaultLogPath())
	v.SetDefault("db", DefaultDB)
	v.SetDefault("refresh_interval", DefaultRefreshInterval)

	v.SetDefault("roster.enabled", true)
	v.SetDefault("roster.timeout", DefaultRosterTimeout)

	v.SetDefault("metrics.addr", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// Read loads cfgFile, or tf2metrics.yaml from the home or working directory
// when cfgFile is empty, then applies TF2METRICS_* environment overrides.
// A missing default config file is not an error.
func Read(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(Name)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(Name)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
