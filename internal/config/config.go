// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Title source drivers.
const (
	DriverHTTP    = "http"
	DriverBrowser = "browser"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Browser  BrowserConfig  `mapstructure:"browser" yaml:"browser"`
	Title    TitleConfig    `mapstructure:"title" yaml:"title"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Ledger   LedgerConfig   `mapstructure:"ledger" yaml:"ledger"`
}

// LoggerConfig defines the logging configuration.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig controls the headless browser used by the browser title driver.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath          string        `mapstructure:"exec_path" yaml:"exec_path"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// TitleConfig describes where the raw material for a name comes from.
type TitleConfig struct {
	Driver   string        `mapstructure:"driver" yaml:"driver"`
	URL      string        `mapstructure:"url" yaml:"url"`
	Selector string        `mapstructure:"selector" yaml:"selector"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// MaxAttempts bounds how many titles are fetched before giving up on
	// titles that filter down to nothing.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`
	// RatePerSecond throttles repeated fetches against the title source.
	RatePerSecond float64 `mapstructure:"rate_per_second" yaml:"rate_per_second"`
}

// IdentityConfig holds the generation bounds for names and passwords.
type IdentityConfig struct {
	PasswordLength int `mapstructure:"password_length" yaml:"password_length"`
	NameMinLength  int `mapstructure:"name_min_length" yaml:"name_min_length"`
	NameMaxLength  int `mapstructure:"name_max_length" yaml:"name_max_length"`
	SuffixMin      int `mapstructure:"suffix_min" yaml:"suffix_min"`
	SuffixMax      int `mapstructure:"suffix_max" yaml:"suffix_max"`
}

// LedgerConfig points at the append-only credential log.
type LedgerConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "handlegen")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.navigation_timeout", "30s")
	v.SetDefault("browser.user_agent", "")

	// -- Title --
	v.SetDefault("title.driver", DriverHTTP)
	v.SetDefault("title.url", "https://en.wikipedia.org/wiki/Special:Random")
	v.SetDefault("title.selector", ".firstHeading")
	v.SetDefault("title.timeout", "15s")
	v.SetDefault("title.max_attempts", 5)
	v.SetDefault("title.rate_per_second", 1.0)

	// -- Identity --
	v.SetDefault("identity.password_length", 16)
	v.SetDefault("identity.name_min_length", 5)
	v.SetDefault("identity.name_max_length", 7)
	v.SetDefault("identity.suffix_min", 10000)
	v.SetDefault("identity.suffix_max", 99999)

	// -- Ledger --
	v.SetDefault("ledger.path", "names.txt")
}

// NewConfigFromViper creates a validated configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	var errs []error

	switch c.Title.Driver {
	case DriverHTTP, DriverBrowser:
	default:
		errs = append(errs, fmt.Errorf("title.driver must be %q or %q, got %q", DriverHTTP, DriverBrowser, c.Title.Driver))
	}
	if c.Title.URL == "" {
		errs = append(errs, errors.New("title.url is required"))
	}
	if c.Title.Selector == "" {
		errs = append(errs, errors.New("title.selector is required"))
	}
	if c.Title.MaxAttempts < 1 {
		errs = append(errs, errors.New("title.max_attempts must be a positive integer"))
	}
	if c.Title.RatePerSecond < 0 {
		errs = append(errs, errors.New("title.rate_per_second must not be negative"))
	}
	if err := c.Identity.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Ledger.Path == "" {
		errs = append(errs, errors.New("ledger.path is required"))
	}

	return errors.Join(errs...)
}

// Validate checks the generation bounds.
func (c IdentityConfig) Validate() error {
	var errs []error
	if c.PasswordLength < 1 {
		errs = append(errs, errors.New("identity.password_length must be a positive integer"))
	}
	if c.NameMinLength < 1 {
		errs = append(errs, errors.New("identity.name_min_length must be a positive integer"))
	}
	if c.NameMaxLength < c.NameMinLength {
		errs = append(errs, errors.New("identity.name_max_length must not be less than identity.name_min_length"))
	}
	if c.SuffixMin < 0 {
		errs = append(errs, errors.New("identity.suffix_min must not be negative"))
	}
	if c.SuffixMax < c.SuffixMin {
		errs = append(errs, errors.New("identity.suffix_max must not be less than identity.suffix_min"))
	}
	return errors.Join(errs...)
}
