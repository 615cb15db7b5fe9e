package config

import (
	"time"
)

// DialerDriver names the dialing action used for looked-up numbers.
type DialerDriver string

const (
	// DialerDriverLog only logs the number that would be dialed.
	DialerDriverLog DialerDriver = "log"

	// DialerDriverAT writes an AT dial command to a modem device.
	DialerDriverAT DialerDriver = "at"

	// DialerDriverExec runs an external program with the number as last argument.
	DialerDriverExec DialerDriver = "exec"
)

// Config holds the main configuration for the application.
type Config struct {
	Seed     map[string]map[string]string `json:"seed,omitempty"     yaml:"seed,omitempty"`
	Version  string                       `json:"version"            yaml:"version"`
	Log      LogConfig                    `json:"log,omitempty"      yaml:"log,omitempty"`
	Dialer   DialerConfig                 `json:"dialer,omitempty"   yaml:"dialer,omitempty"`
	Registry RegistryConfig               `json:"registry"           yaml:"registry"`
	Server   ServerConfig                 `json:"server,omitempty"   yaml:"server,omitempty"`
}

// RegistryConfig holds the directory layout. It is fixed once the registry
// has been built.
type RegistryConfig struct {
	RemainderPolicy string       `json:"remainder_policy,omitempty" yaml:"remainder_policy,omitempty"`
	DirectoryNames  []string     `json:"directory_names,omitempty"  yaml:"directory_names,omitempty"`
	Number          NumberConfig `json:"number,omitempty"           yaml:"number,omitempty"`
	MaxDirectories  int          `json:"max_directories"            yaml:"max_directories"`
	TotalCapacity   int          `json:"total_capacity"             yaml:"total_capacity"`
	MaxCodeLength   int          `json:"max_code_length,omitempty"  yaml:"max_code_length,omitempty"`
}

// NumberConfig holds the phone number length policy.
type NumberConfig struct {
	MaxLength int  `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Truncate  bool `json:"truncate,omitempty"   yaml:"truncate,omitempty"`
}

// DialerConfig selects and configures the dialing action.
type DialerConfig struct {
	Driver     DialerDriver  `json:"driver,omitempty"      yaml:"driver,omitempty"`
	ATTemplate string        `json:"at_template,omitempty" yaml:"at_template,omitempty"`
	Device     string        `json:"device,omitempty"      yaml:"device,omitempty"`
	ExecPath   string        `json:"exec_path,omitempty"   yaml:"exec_path,omitempty"`
	ExecArgs   []string      `json:"exec_args,omitempty"   yaml:"exec_args,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
}

// ServerConfig holds the listening ports of the front-end servers.
type ServerConfig struct {
	HTTPPort int `json:"http_port,omitempty" yaml:"http_port,omitempty"`
	GRPCPort int `json:"grpc_port,omitempty" yaml:"grpc_port,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty"  yaml:"file,omitempty"`
}

// RegistryChanged reports whether the registry layout differs between two
// configs. Layout changes only take effect after a restart.
func (c *Config) RegistryChanged(other *Config) bool {
	a, b := c.Registry, other.Registry
	if a.RemainderPolicy != b.RemainderPolicy ||
		a.MaxDirectories != b.MaxDirectories ||
		a.TotalCapacity != b.TotalCapacity ||
		a.MaxCodeLength != b.MaxCodeLength ||
		a.Number != b.Number ||
		len(a.DirectoryNames) != len(b.DirectoryNames) {
		return true
	}

	for i := range a.DirectoryNames {
		if a.DirectoryNames[i] != b.DirectoryNames[i] {
			return true
		}
	}

	return false
}
