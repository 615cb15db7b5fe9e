package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/speeddial/internal/envvar"
)

func TestParse(t *testing.T) {
	tests := map[string]Environment{
		"":            Development,
		"development": Development,
		"PROD":        Production,
		" production": Production,
		"test":        Test,
		"staging":     Development,
	}

	for raw, want := range tests {
		assert.Equal(t, want, Parse(raw), "raw=%q", raw)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(envvar.SpeeddialEnv, "production")

	e := FromEnv()
	assert.True(t, e.IsProduction())
	assert.Equal(t, "production", e.String())
}
