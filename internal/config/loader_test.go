package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/speeddial/internal/envvar"
)

const sampleConfig = `
version: "1"
registry:
  max_directories: 7
  total_capacity: 1000
  remainder_policy: spread
  max_code_length: 49
  number:
    max_length: 19
    truncate: true
seed:
  "Directory 1":
    home: "123-456-7890"
    work: "987-654-3210"
  "Directory 5":
    emergency: "911"
dialer:
  driver: at
  device: /dev/ttyUSB0
  timeout: 3s
server:
  http_port: 8081
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, sampleConfig), "")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Registry.MaxDirectories)
	assert.Equal(t, "spread", cfg.Registry.RemainderPolicy)
	assert.Equal(t, NumberConfig{MaxLength: 19, Truncate: true}, cfg.Registry.Number)
	assert.Equal(t, "911", cfg.Seed["Directory 5"]["emergency"])
	assert.Equal(t, DialerDriverAT, cfg.Dialer.Driver)
	assert.Equal(t, 3*time.Second, cfg.Dialer.Timeout)
	assert.Equal(t, "ATD%s;\r\n", cfg.Dialer.ATTemplate)
	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, DefaultGRPCPort(), cfg.Server.GRPCPort)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing registry": `version: "1"`,
		"zero directories": "version: \"1\"\nregistry: {max_directories: 0, total_capacity: 10}",
		"unknown policy":   "version: \"1\"\nregistry: {max_directories: 1, total_capacity: 10, remainder_policy: round}",
		"unknown driver":   "version: \"1\"\nregistry: {max_directories: 1, total_capacity: 10}\ndialer: {driver: sip}",
		"unknown field":    "version: \"1\"\nregistry: {max_directories: 1, total_capacity: 10, colour: red}",
		"empty number":     "version: \"1\"\nregistry: {max_directories: 1, total_capacity: 10}\nseed: {a: {home: \"\"}}",
		"bad yaml":         "version: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content), "")
			assert.Error(t, err)
		})
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv(envvar.SpeeddialServerHTTPPort, "9999")
	t.Setenv(envvar.SpeeddialLogLevel, "warn")

	cfg, err := Parse([]byte(sampleConfig), "")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Log.Level)

	t.Setenv(envvar.SpeeddialServerGRPCPort, "not-a-port")
	_, err = Parse([]byte(sampleConfig), "")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5, cfg.Registry.MaxDirectories)
	assert.Equal(t, 1000, cfg.Registry.TotalCapacity)
	assert.Equal(t, DialerDriverLog, cfg.Dialer.Driver)
	assert.Equal(t, DefaultHTTPPort(), cfg.Server.HTTPPort)
}

func TestConfig_RegistryChanged(t *testing.T) {
	a := Default()
	b := Default()
	assert.False(t, a.RegistryChanged(b))

	b.Dialer.Driver = DialerDriverExec
	assert.False(t, a.RegistryChanged(b))

	b.Registry.DirectoryNames = []string{"work"}
	assert.True(t, a.RegistryChanged(b))

	c := Default()
	c.Registry.TotalCapacity = 500
	assert.True(t, a.RegistryChanged(c))
}
