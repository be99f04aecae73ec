package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "formkit.json"

	// DefaultAddr is the default demo server listen address.
	DefaultAddr = ":3000"

	// DefaultFormID is the form identifier submissions are stored under.
	DefaultFormID = "demo"

	// DefaultMetricsNamespace is the Prometheus namespace.
	DefaultMetricsNamespace = "formkit"
)

// Config is the formkit.json configuration.
type Config struct {
	// Addr is the demo server listen address.
	Addr string `json:"addr,omitempty"`

	// Title is the SSR page title.
	Title string `json:"title,omitempty"`

	// FormID is the identifier submissions are stored under.
	FormID string `json:"form_id,omitempty"`

	// Pretty enables indented SSR output.
	Pretty bool `json:"pretty,omitempty"`

	// MetricsNamespace is the Prometheus metrics namespace.
	MetricsNamespace string `json:"metrics_namespace,omitempty"`

	// ReadTimeoutSeconds bounds how long a live session waits for the
	// next client message.
	ReadTimeoutSeconds int `json:"read_timeout_seconds,omitempty"`

	// S3 configures optional S3 submission storage. When Bucket is
	// empty, submissions are kept in memory.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config configures S3 submission storage.
type S3Config struct {
	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix for submission objects.
	Prefix string `json:"prefix,omitempty"`
}

// Default returns the configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Addr:             DefaultAddr,
		Title:            "formkit demo",
		FormID:           DefaultFormID,
		MetricsNamespace: DefaultMetricsNamespace,
	}
}

// Load reads formkit.json from the current directory. A missing file is
// not an error; defaults are returned.
func Load() (*Config, error) {
	return LoadFrom(ConfigFileName)
}

// LoadFrom reads the configuration from the given path, filling in
// defaults for unset fields. A missing file yields pure defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	fillDefaults(cfg)
	return cfg, nil
}

// ReadTimeout returns the configured read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	if c.ReadTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// fillDefaults completes fields the file left unset.
func fillDefaults(cfg *Config) {
	defaults := Default()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.FormID == "" {
		cfg.FormID = defaults.FormID
	}
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = defaults.MetricsNamespace
	}
	if cfg.S3.Bucket != "" && cfg.S3.Prefix == "" {
		cfg.S3.Prefix = "submissions/"
	}
}
