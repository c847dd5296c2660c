// auth.go: NATS authentication for the embedded node and its clients
//
// Modes:
//
//	NATS_AUTH=none   - No auth (local development)
//	NATS_AUTH=token  - Shared token from NATS_TOKEN or <dir>/token
//	NATS_AUTH=nkey   - User NKey, public key in <dir>/user.pub, seed in <dir>/user.nk
//
// <dir> is NATS_AUTH_DIR, default ".auth". A <dir>/mode file overrides NATS_AUTH.
package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Auth modes
const (
	AuthNone  = "none"
	AuthToken = "token"
	AuthNKey  = "nkey"
)

// DefaultAuthDir holds the auth files, relative to the working directory.
const DefaultAuthDir = ".auth"

// ErrUnknownAuthMode is returned for a NATS_AUTH value other than none, token or nkey.
var ErrUnknownAuthMode = errors.New("unknown auth mode")

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Mode    string // none, token, nkey
	Dir     string // auth file directory
	Token   string // for token mode
	NKeyPub string // for nkey mode (user public key)
}

// readAuthFile reads and trims a file from the auth directory
func readAuthFile(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadAuthConfig reads auth configuration from the environment and the auth directory.
func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		Mode: GetEnv("NATS_AUTH", AuthNone),
		Dir:  GetEnv("NATS_AUTH_DIR", DefaultAuthDir),
	}

	if mode, err := readAuthFile(cfg.Dir, "mode"); err == nil && mode != "" {
		cfg.Mode = mode
	}

	switch cfg.Mode {
	case AuthNone:

	case AuthToken:
		cfg.Token = os.Getenv("NATS_TOKEN")
		if cfg.Token == "" {
			cfg.Token, _ = readAuthFile(cfg.Dir, "token")
		}
		if cfg.Token == "" {
			return nil, fmt.Errorf("token auth requires NATS_TOKEN env var or %s file", filepath.Join(cfg.Dir, "token"))
		}

	case AuthNKey:
		pub, err := readAuthFile(cfg.Dir, "user.pub")
		if err != nil {
			return nil, fmt.Errorf("nkey auth requires %s: %w", filepath.Join(cfg.Dir, "user.pub"), err)
		}
		if !nkeys.IsValidPublicUserKey(pub) {
			return nil, fmt.Errorf("invalid NKey in %s (must start with U)", filepath.Join(cfg.Dir, "user.pub"))
		}
		if _, err := os.Stat(filepath.Join(cfg.Dir, "user.nk")); err != nil {
			return nil, fmt.Errorf("nkey auth requires seed file %s: %w", filepath.Join(cfg.Dir, "user.nk"), err)
		}
		cfg.NKeyPub = pub

	default:
		return nil, fmt.Errorf("%w: %s (use: none, token, nkey)", ErrUnknownAuthMode, cfg.Mode)
	}

	return cfg, nil
}

// ConfigureAuth applies authentication settings to NATS server options
func ConfigureAuth(opts *server.Options, cfg *AuthConfig) error {
	switch cfg.Mode {
	case AuthNone:
		return nil
	case AuthToken:
		opts.Authorization = cfg.Token
		return nil
	case AuthNKey:
		opts.Nkeys = []*server.NkeyUser{{
			Nkey: cfg.NKeyPub,
			Permissions: &server.Permissions{
				Publish:   &server.SubjectPermission{Allow: []string{">"}},
				Subscribe: &server.SubjectPermission{Allow: []string{">"}},
			},
		}}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAuthMode, cfg.Mode)
	}
}

// ClientOptions returns NATS client connection options for the auth mode.
func ClientOptions(cfg *AuthConfig) ([]nats.Option, error) {
	switch cfg.Mode {
	case AuthNone:
		return nil, nil
	case AuthToken:
		return []nats.Option{nats.Token(cfg.Token)}, nil
	case AuthNKey:
		return nkeyClientOptions(cfg.Dir)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAuthMode, cfg.Mode)
	}
}

// nkeyClientOptions loads the NKey seed and signs server nonces with it.
func nkeyClientOptions(dir string) ([]nats.Option, error) {
	seed, err := readAuthFile(dir, "user.nk")
	if err != nil {
		return nil, fmt.Errorf("reading NKey seed: %w", err)
	}

	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("parsing NKey seed: %w", err)
	}

	pubKey, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("getting public key: %w", err)
	}

	return []nats.Option{nats.Nkey(pubKey, kp.Sign)}, nil
}
