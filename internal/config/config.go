// Package config loads coopdesk settings.
//
// Precedence, lowest first: built-in defaults, <home>/config.yaml, .env
// files, COOPDESK_* environment variables, command-line flags (applied by
// the caller).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"coopdesk/internal/store"
)

// FileName is the config file inside the home directory.
const FileName = "config.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvAPIURL   = "COOPDESK_API_URL"
	EnvTenant   = "COOPDESK_TENANT"
	EnvTimeout  = "COOPDESK_TIMEOUT"
	EnvCurrency = "COOPDESK_CURRENCY"
	EnvOutput   = "COOPDESK_OUTPUT"
	EnvLogFile  = "COOPDESK_LOG_FILE"
)

// Config holds all coopdesk configuration.
type Config struct {
	APIURL   string `yaml:"api_url"`
	Tenant   string `yaml:"tenant,omitempty"`
	Timeout  string `yaml:"timeout"`
	Currency string `yaml:"currency"`
	Output   string `yaml:"output"`

	// Early loan termination fee as a percentage of the outstanding balance.
	TerminationFeePercent float64 `yaml:"termination_fee_percent"`

	// LogFile receives logs in addition to stderr when set.
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:   "http://127.0.0.1:8080",
		Timeout:  "30s",
		Currency: "NGN",
		Output:   "table",
	}
}

// Load reads <home>/config.yaml over the defaults. A missing file is fine.
func Load(home string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(filepath.Join(home, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes cfg to <home>/config.yaml.
func Save(home string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return store.WriteFileAtomic(filepath.Join(home, FileName), b, 0o600)
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from COOPDESK_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.APIURL, EnvAPIURL)
	set(&c.Tenant, EnvTenant)
	set(&c.Timeout, EnvTimeout)
	set(&c.Currency, EnvCurrency)
	set(&c.Output, EnvOutput)
	set(&c.LogFile, EnvLogFile)
}

// TimeoutDuration parses Timeout. Bare numbers are seconds.
func (c Config) TimeoutDuration() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Validate checks the settings that would otherwise fail at request time.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL)
	}
	d, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", d)
	}
	switch strings.ToLower(c.Output) {
	case "table", "json":
	default:
		return fmt.Errorf("output %q must be table or json", c.Output)
	}
	if c.TerminationFeePercent < 0 {
		return fmt.Errorf("termination_fee_percent must not be negative")
	}
	return nil
}
