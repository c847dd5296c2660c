package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   string
	}{
		{"returns default when not set", "", "mechaCore"},
		{"returns env value when set", "ghibliDream", "ghibliDream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("THEME_TEST_DEFAULT", tt.envVal)
			assert.Equal(t, tt.want, GetEnv("THEME_TEST_DEFAULT", "mechaCore"))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name   string
		envVal string
		want   int
	}{
		{"returns default when not set", "", 4222},
		{"returns env value when set", "14222", 14222},
		{"returns default on invalid int", "not-a-number", 4222},
		{"handles zero", "0", 0},
		{"handles negative", "-1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("THEME_TEST_PORT", tt.envVal)
			assert.Equal(t, tt.want, GetEnvInt("THEME_TEST_PORT", 4222))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name       string
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"returns default when not set", "", true, true},
		{"true for 'true'", "true", false, true},
		{"true for 'TRUE'", "TRUE", false, true},
		{"true for '1'", "1", false, true},
		{"true for 'yes'", "yes", false, true},
		{"false for 'false'", "false", true, false},
		{"false for '0'", "0", true, false},
		{"false for invalid value", "dark", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("THEME_TEST_DARK", tt.envVal)
			assert.Equal(t, tt.want, GetEnvBool("THEME_TEST_DARK", tt.defaultVal))
		})
	}
}

func TestGetNATSURL(t *testing.T) {
	t.Setenv("NATS_URL", "")
	assert.Empty(t, GetNATSURL())

	t.Setenv("NATS_URL", "nats://hub:4222")
	assert.Equal(t, "nats://hub:4222", GetNATSURL())
}

func TestGetViaAddr(t *testing.T) {
	t.Run("returns default addr", func(t *testing.T) {
		t.Setenv("VIA_ADDR", "")
		t.Setenv("VIA_PORT", "")
		assert.Equal(t, DefaultViaAddr, GetViaAddr())
	})

	t.Run("uses VIA_ADDR override", func(t *testing.T) {
		t.Setenv("VIA_ADDR", "0.0.0.0:8080")
		t.Setenv("VIA_PORT", "4000")
		assert.Equal(t, "0.0.0.0:8080", GetViaAddr())
	})

	t.Run("builds from VIA_PORT", func(t *testing.T) {
		t.Setenv("VIA_ADDR", "")
		t.Setenv("VIA_PORT", "4000")
		assert.Equal(t, ":4000", GetViaAddr())
	})
}

func TestGetViaURL(t *testing.T) {
	t.Setenv("VIA_HOST", "")
	t.Setenv("VIA_PORT", "")
	assert.Equal(t, "http://localhost:3000", GetViaURL())

	t.Setenv("VIA_HOST", "example.com")
	t.Setenv("VIA_PORT", "8080")
	assert.Equal(t, "http://example.com:8080", GetViaURL())
}
