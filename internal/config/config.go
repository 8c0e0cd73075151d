// Package config provides YAML-based configuration loading for
// TalentFlow.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level TalentFlow configuration, loaded from
// talentflow.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Simulate SimulateConfig `yaml:"simulate"`
	Seed     SeedConfig     `yaml:"seed"`
	Digest   DigestConfig   `yaml:"digest"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

// DBConfig selects the record-store backend. Sqlite is the default;
// mysql is selectable for a shared store.
type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // sqlite file path
	DSN    string `yaml:"dsn"`  // mysql DSN
}

// SimulateConfig bounds the injected write latency and failure rate.
// A non-zero seed makes the injection reproducible.
type SimulateConfig struct {
	MinLatencyMS   int     `yaml:"min_latency_ms"`
	MaxLatencyMS   int     `yaml:"max_latency_ms"`
	MinFailureRate float64 `yaml:"min_failure_rate"`
	MaxFailureRate float64 `yaml:"max_failure_rate"`
	Seed           int64   `yaml:"seed"`
}

// MinLatency returns the lower latency bound as a duration.
func (s SimulateConfig) MinLatency() time.Duration {
	return time.Duration(s.MinLatencyMS) * time.Millisecond
}

// MaxLatency returns the upper latency bound as a duration.
func (s SimulateConfig) MaxLatency() time.Duration {
	return time.Duration(s.MaxLatencyMS) * time.Millisecond
}

// SeedConfig sizes the generated sample data.
type SeedConfig struct {
	Candidates  int   `yaml:"candidates"`
	Assessments int   `yaml:"assessments"`
	Seed        int64 `yaml:"seed"`
}

// DigestConfig schedules the periodic pipeline digest.
type DigestConfig struct {
	Schedule string `yaml:"schedule"` // cron spec, e.g. "@every 15m"
}

// NotifyConfig holds optional stage-change notification targets.
type NotifyConfig struct {
	SlackWebhook string `yaml:"slack_webhook"`
}

// Load reads a YAML config file from path and returns a validated
// Config. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in unset values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Path == "" {
		c.DB.Path = "talentflow.db"
	}
	if c.Simulate.MinLatencyMS == 0 && c.Simulate.MaxLatencyMS == 0 {
		c.Simulate.MinLatencyMS = 200
		c.Simulate.MaxLatencyMS = 1200
	}
	if c.Simulate.MinFailureRate == 0 && c.Simulate.MaxFailureRate == 0 {
		c.Simulate.MinFailureRate = 0.05
		c.Simulate.MaxFailureRate = 0.10
	}
	if c.Seed.Candidates == 0 {
		c.Seed.Candidates = 1000
	}
	if c.Seed.Assessments == 0 {
		c.Seed.Assessments = 5
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "@every 15m"
	}
}

// validate checks that all fields are consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.DB.Driver != "sqlite" && c.DB.Driver != "mysql" {
		errs = append(errs, fmt.Sprintf("db.driver %q must be sqlite or mysql", c.DB.Driver))
	}
	if c.DB.Driver == "mysql" && c.DB.DSN == "" {
		errs = append(errs, "db.dsn is required for the mysql driver")
	}
	if c.Simulate.MinLatencyMS < 0 || c.Simulate.MaxLatencyMS < c.Simulate.MinLatencyMS {
		errs = append(errs, fmt.Sprintf("simulate latency range [%d, %d] invalid",
			c.Simulate.MinLatencyMS, c.Simulate.MaxLatencyMS))
	}
	if c.Simulate.MinFailureRate < 0 || c.Simulate.MaxFailureRate > 1 ||
		c.Simulate.MaxFailureRate < c.Simulate.MinFailureRate {
		errs = append(errs, fmt.Sprintf("simulate failure range [%v, %v] invalid",
			c.Simulate.MinFailureRate, c.Simulate.MaxFailureRate))
	}
	if c.Seed.Candidates < 0 || c.Seed.Assessments < 0 {
		errs = append(errs, "seed sizes must be non-negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DBTarget returns the driver and DSN for db.Open.
func (c *Config) DBTarget() (driver, dsn string) {
	if c.DB.Driver == "mysql" {
		return "mysql", c.DB.DSN
	}
	return "sqlite", c.DB.Path
}
