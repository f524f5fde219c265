// Package config loads client settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// AppName is the configuration directory name.
const AppName = "todo"

// Default values.
const (
	DefaultBaseURL  = "http://localhost:8080"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
	DefaultTheme    = "classic"
)

// Config holds the client settings.
type Config struct {
	BaseURL  string `toml:"base_url"`
	Timeout  string `toml:"timeout"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Theme    string `toml:"theme"`

	// Path is the file the settings were read from, empty when none.
	Path string `toml:"-"`
}

// Overrides are values set on the command line. Empty fields are ignored.
type Overrides struct {
	ConfigFile string
	BaseURL    string
	Timeout    string
	LogLevel   string
	LogFile    string
	Theme      string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout.String(),
		LogLevel: DefaultLogLevel,
		Theme:    DefaultTheme,
	}
}

// Load builds the effective configuration and validates it.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	path := o.ConfigFile
	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultConfigDir(), "config.toml")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	loadEnv(cfg)
	cfg.apply(o)

	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("log_file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// loadFile decodes path over cfg. A missing file is only an error when the
// user named it.
func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("TODO_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TODO_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
}

func (c *Config) apply(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.BaseURL, o.BaseURL)
	set(&c.Timeout, o.Timeout)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFile, o.LogFile)
	set(&c.Theme, o.Theme)
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timeout))
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Validate requires an absolute http(s) base URL and a positive timeout.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return fmt.Errorf("base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q: must be an absolute http or https URL", c.BaseURL)
	}
	d, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("timeout %q: must be positive", c.Timeout)
	}
	return nil
}
