package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	defaultHTTPPort      = 8080
	defaultGRPCPort      = 9090
	defaultATTemplate    = "ATD%s;\r\n"
	defaultDialTimeout   = 10 * time.Second
	defaultLogLevel      = "info"
	defaultLogFile       = "logs/speeddial.log"
	defaultVersion       = "1"
	defaultDirectories   = 5
	defaultTotalCapacity = 1000
)

// Default returns the built-in configuration: five directories sharing
// 1000 entries and a dialer that only logs.
func Default() *Config {
	cfg := &Config{
		Version: defaultVersion,
		Registry: RegistryConfig{
			MaxDirectories: defaultDirectories,
			TotalCapacity:  defaultTotalCapacity,
		},
	}
	cfg.applyDefaults()

	return cfg
}

// applyDefaults fills unset optional fields.
func (c *Config) applyDefaults() {
	if c.Dialer.Driver == "" {
		c.Dialer.Driver = DialerDriverLog
	}
	if c.Dialer.ATTemplate == "" {
		c.Dialer.ATTemplate = defaultATTemplate
	}
	if c.Dialer.Timeout == 0 {
		c.Dialer.Timeout = defaultDialTimeout
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = defaultGRPCPort
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile
	}
}

// DefaultHTTPPort returns the HTTP port used when none is configured.
func DefaultHTTPPort() int {
	return defaultHTTPPort
}

// DefaultGRPCPort returns the gRPC port used when none is configured.
func DefaultGRPCPort() int {
	return defaultGRPCPort
}

// DefaultConfigPath returns the default path for the speeddial config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "speeddial", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "speeddial")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "speeddial")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "speeddial")
		}
		return filepath.Join(home, ".config", "speeddial")
	}
}
