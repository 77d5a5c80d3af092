package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the scrapfolio configuration
type Config struct {
	ProxyBase      string        `yaml:"proxy_base"`
	Project        string        `yaml:"project"`
	FileHost       string        `yaml:"file_host"`
	ListingLimit   int           `yaml:"listing_limit"`
	ArtworkTag     string        `yaml:"artwork_tag"`
	ExcludedTitles []string      `yaml:"excluded_titles,omitempty"`
	Addr           string        `yaml:"addr"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"-"` // Stored as a duration string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		ProxyBase:      "https://ayaka-scrapbox.santanaruse.workers.dev",
		Project:        "ayakasakakibara",
		FileHost:       "scrapbox.io",
		ListingLimit:   100,
		ArtworkTag:     "artwork",
		ExcludedTitles: []string{"artwork", "About"},
		Addr:           "127.0.0.1:8080",
		LogFile:        "/tmp/scrapfolio.log",
		LogLevel:       "info",
		RequestTimeout: 15 * time.Second,
	}
}

// ConfigPath returns the path to the config file
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "scrapfolio", "config.yaml")
	}
	return filepath.Join(home, ".config", "scrapfolio", "config.yaml")
}

// PIDFilePath returns the path to the daemon PID file
// Can be overridden for testing
var PIDFilePath = func() string {
	return filepath.Join(xdg.StateHome, "scrapfolio", "server.pid")
}

// rawConfig mirrors Config with the timeout as a string
type rawConfig struct {
	ProxyBase      string   `yaml:"proxy_base"`
	Project        string   `yaml:"project"`
	FileHost       string   `yaml:"file_host,omitempty"`
	ListingLimit   int      `yaml:"listing_limit,omitempty"`
	ArtworkTag     string   `yaml:"artwork_tag,omitempty"`
	ExcludedTitles []string `yaml:"excluded_titles,omitempty"`
	Addr           string   `yaml:"addr,omitempty"`
	LogFile        string   `yaml:"log_file,omitempty"`
	LogLevel       string   `yaml:"log_level,omitempty"`
	RequestTimeout string   `yaml:"request_timeout,omitempty"`
}

// Load reads configuration from the config file
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration, filling unset fields with defaults
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.ProxyBase != "" {
		cfg.ProxyBase = raw.ProxyBase
	}
	if raw.Project != "" {
		cfg.Project = raw.Project
	}
	if raw.FileHost != "" {
		cfg.FileHost = raw.FileHost
	}
	if raw.ListingLimit != 0 {
		cfg.ListingLimit = raw.ListingLimit
	}
	if raw.ArtworkTag != "" {
		cfg.ArtworkTag = raw.ArtworkTag
	}
	if raw.ExcludedTitles != nil {
		cfg.ExcludedTitles = raw.ExcludedTitles
	}
	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.RequestTimeout != "" {
		timeout, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid request_timeout format '%s': %w", raw.RequestTimeout, err)
		}
		cfg.RequestTimeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		ProxyBase:      c.ProxyBase,
		Project:        c.Project,
		FileHost:       c.FileHost,
		ListingLimit:   c.ListingLimit,
		ArtworkTag:     c.ArtworkTag,
		ExcludedTitles: c.ExcludedTitles,
		Addr:           c.Addr,
		LogFile:        c.LogFile,
		LogLevel:       c.LogLevel,
		RequestTimeout: c.RequestTimeout.String(),
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ProxyBase == "" {
		return fmt.Errorf("proxy_base cannot be empty")
	}
	u, err := url.Parse(c.ProxyBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("proxy_base must be an absolute http(s) URL, got '%s'", c.ProxyBase)
	}
	if c.Project == "" {
		return fmt.Errorf("project cannot be empty")
	}
	if c.FileHost == "" {
		return fmt.Errorf("file_host cannot be empty")
	}
	if c.ListingLimit <= 0 {
		return fmt.Errorf("listing_limit must be positive")
	}
	if c.ArtworkTag == "" {
		return fmt.Errorf("artwork_tag cannot be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
