package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type AnthropicConfig struct {
	BaseURL      string `toml:"base_url"`
	DefaultModel string `toml:"default_model"`
}

type SecurityConfig struct {
	Method     string `toml:"method"`
	SSHKeyPath string `toml:"ssh_key_path,omitempty"`
}

type UserConfig struct {
	Anthropic AnthropicConfig `toml:"anthropic"`
	Units     string          `toml:"units"`
	Security  SecurityConfig  `toml:"security"`
}

type Config struct {
	DataDirectory  string
	BaseURL        string
	DefaultModel   string
	Units          string
	SecurityMethod SecurityMethod
	SSHKeyPath     string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) Model() string {
	return c.DefaultModel
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if baseURL := os.Getenv("TRAINAI_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}
	if model := os.Getenv("TRAINAI_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if units := os.Getenv("TRAINAI_UNITS"); units != "" {
		c.Units = units
	}
	if dataDir := os.Getenv("TRAINAI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("TRAINAI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain conversation fragments)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (TRAINAI_DEBUG=%s) ===", os.Getenv("TRAINAI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:  "~/.local/share/trainai",
		DefaultModel:   "claude-sonnet-4-6",
		Units:          "metric",
		SecurityMethod: SecurityPlainText,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.BaseURL = userCfg.Anthropic.BaseURL
	if userCfg.Anthropic.DefaultModel != "" {
		cfg.DefaultModel = userCfg.Anthropic.DefaultModel
	}
	if userCfg.Units != "" {
		cfg.Units = userCfg.Units
	}
	if userCfg.Security.Method != "" {
		cfg.SecurityMethod = SecurityMethod(userCfg.Security.Method)
		cfg.SSHKeyPath = userCfg.Security.SSHKeyPath
	}

	// Env overrides win over the user config file too
	cfg.applyEnvOverrides()

	return cfg, nil
}
