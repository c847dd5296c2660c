// Package env provides the environment, secret and NATS plumbing shared by
// the theme server and themectl.
//
//   - GetEnv/GetEnvInt/GetEnvBool: Read environment variables with defaults
//   - GetNATSURL: Remote NATS server, if any
//   - GetViaAddr/GetViaURL: Via server address from env vars
//
// Environment Variables:
//
//	Via Web UI:
//	  VIA_ADDR    - Via server bind address (default: :3000)
//	  VIA_PORT    - Via server port (default: 3000)
//	  VIA_HOST    - Via server host for URLs (default: localhost)
//
//	NATS:
//	  NATS_URL    - Remote server URL (empty = run an embedded node)
//	  NATS_NAME   - Embedded node name
//	  NATS_PORT   - Embedded node client port
//	  NATS_HUB    - Hub URL when the embedded node runs as a leaf
//	  NATS_DATA   - Data directory (empty = temporary)
//	  NATS_AUTH   - none, token or nkey
//
//	Theme:
//	  THEME_BUCKET - KV bucket holding the preferences (default: theme_prefs)
//
// Usage:
//
//	import "github.com/joeblew999/wellnown-theme/pkg/env"
//
//	bucket := env.GetEnv("THEME_BUCKET", env.DefaultBucket)
//	viaAddr := env.GetViaAddr()
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default values for Via web UI
const (
	DefaultViaHost = "localhost"
	DefaultViaPort = "3000"
	DefaultViaAddr = ":3000"
)

// DefaultBucket is the KV bucket theme preferences live in.
const DefaultBucket = "theme_prefs"

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvInt returns the value of an environment variable as int or a default.
func GetEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetEnvBool returns the value of an environment variable as bool or a default.
// Accepts "true", "1", "yes" (case-insensitive) as true values.
func GetEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "true" || v == "1" || v == "yes"
	}
	return defaultVal
}

// GetNATSURL returns NATS_URL. Empty means "start an embedded node".
func GetNATSURL() string {
	return os.Getenv("NATS_URL")
}

// GetViaAddr returns the Via server bind address from env vars.
// Checks VIA_ADDR first, then builds from VIA_PORT.
func GetViaAddr() string {
	if addr := os.Getenv("VIA_ADDR"); addr != "" {
		return addr
	}
	port := GetEnv("VIA_PORT", DefaultViaPort)
	return ":" + port
}

// GetViaURL returns the full Via server URL for display/linking.
func GetViaURL() string {
	host := GetEnv("VIA_HOST", DefaultViaHost)
	port := GetEnv("VIA_PORT", DefaultViaPort)
	return fmt.Sprintf("http://%s:%s", host, port)
}
