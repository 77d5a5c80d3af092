package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ProxyBase == "" {
		t.Error("Expected ProxyBase to be set")
	}
	if cfg.Project == "" {
		t.Error("Expected Project to be set")
	}
	if cfg.FileHost != "scrapbox.io" {
		t.Errorf("Expected FileHost scrapbox.io, got %q", cfg.FileHost)
	}
	if cfg.ListingLimit != 100 {
		t.Errorf("Expected ListingLimit 100, got %d", cfg.ListingLimit)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("Expected RequestTimeout to be 15s, got %v", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty proxy_base",
			modify:  func(c *Config) { c.ProxyBase = "" },
			wantErr: true,
		},
		{
			name:    "relative proxy_base",
			modify:  func(c *Config) { c.ProxyBase = "proxy.example" },
			wantErr: true,
		},
		{
			name:    "ftp proxy_base",
			modify:  func(c *Config) { c.ProxyBase = "ftp://proxy.example" },
			wantErr: true,
		},
		{
			name:    "empty project",
			modify:  func(c *Config) { c.Project = "" },
			wantErr: true,
		},
		{
			name:    "zero listing limit",
			modify:  func(c *Config) { c.ListingLimit = 0 },
			wantErr: true,
		},
		{
			name:    "empty artwork tag",
			modify:  func(c *Config) { c.ArtworkTag = "" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.RequestTimeout = -5 * time.Second },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")
	overrideConfigPath(t, testConfigPath)

	testCfg := DefaultConfig()
	testCfg.ProxyBase = "https://proxy.example"
	testCfg.Project = "gallery"
	testCfg.ExcludedTitles = []string{"About", "Contact"}
	testCfg.LogFile = filepath.Join(tmpDir, "scrapfolio.log")
	testCfg.RequestTimeout = 45 * time.Second

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.ProxyBase != testCfg.ProxyBase {
		t.Errorf("ProxyBase mismatch: got %q, want %q", loadedCfg.ProxyBase, testCfg.ProxyBase)
	}
	if loadedCfg.Project != testCfg.Project {
		t.Errorf("Project mismatch: got %q, want %q", loadedCfg.Project, testCfg.Project)
	}
	if loadedCfg.RequestTimeout != testCfg.RequestTimeout {
		t.Errorf("RequestTimeout mismatch: got %v, want %v", loadedCfg.RequestTimeout, testCfg.RequestTimeout)
	}
	if len(loadedCfg.ExcludedTitles) != 2 || loadedCfg.ExcludedTitles[1] != "Contact" {
		t.Errorf("ExcludedTitles mismatch: got %v", loadedCfg.ExcludedTitles)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	overrideConfigPath(t, filepath.Join(t.TempDir(), "nonexistent.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.ListingLimit != 100 {
		t.Errorf("Expected default listing limit 100, got %d", cfg.ListingLimit)
	}
}

func TestParsePartialConfig(t *testing.T) {
	data := []byte("project: other\nrequest_timeout: 3s\nlog_level: debug\n")

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Project != "other" {
		t.Errorf("Expected project 'other', got %q", cfg.Project)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", cfg.RequestTimeout)
	}
	if cfg.ProxyBase != DefaultConfig().ProxyBase {
		t.Errorf("Expected default proxy base, got %q", cfg.ProxyBase)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestParseInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed yaml",
			data: "project: [unterminated",
		},
		{
			name: "bad duration",
			data: "request_timeout: soon",
		},
		{
			name: "invalid proxy",
			data: "proxy_base: not a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.data)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expansion",
			input:    "~/test.log",
			expected: filepath.Join(homeDir, "test.log"),
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: homeDir,
		},
		{
			name:     "absolute path",
			input:    "/tmp/test.log",
			expected: "/tmp/test.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLogFileExpanded(t *testing.T) {
	cfg, err := Parse([]byte("log_file: ~/scrapfolio.log\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
