package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAuthFiles lays out an auth directory the way LoadAuthConfig expects.
func writeAuthFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0o600))
	}
	return dir
}

func newUserKey(t *testing.T) (pub, seed string) {
	t.Helper()
	kp, err := nkeys.CreateUser()
	require.NoError(t, err)
	p, err := kp.PublicKey()
	require.NoError(t, err)
	s, err := kp.Seed()
	require.NoError(t, err)
	return p, string(s)
}

func TestLoadAuthConfig(t *testing.T) {
	pub, seed := newUserKey(t)

	tests := []struct {
		name    string
		mode    string
		token   string
		files   map[string]string
		want    AuthConfig
		wantErr bool
	}{
		{
			name: "none by default",
			want: AuthConfig{Mode: AuthNone},
		},
		{
			name:  "token from env",
			mode:  AuthToken,
			token: "s3cret",
			want:  AuthConfig{Mode: AuthToken, Token: "s3cret"},
		},
		{
			name:  "token from file",
			mode:  AuthToken,
			files: map[string]string{"token": "from-file"},
			want:  AuthConfig{Mode: AuthToken, Token: "from-file"},
		},
		{
			name:    "token missing",
			mode:    AuthToken,
			wantErr: true,
		},
		{
			name:  "mode file wins over env",
			mode:  AuthNone,
			files: map[string]string{"mode": "token", "token": "t"},
			want:  AuthConfig{Mode: AuthToken, Token: "t"},
		},
		{
			name:  "nkey",
			mode:  AuthNKey,
			files: map[string]string{"user.pub": pub, "user.nk": seed},
			want:  AuthConfig{Mode: AuthNKey, NKeyPub: pub},
		},
		{
			name:    "nkey without seed",
			mode:    AuthNKey,
			files:   map[string]string{"user.pub": pub},
			wantErr: true,
		},
		{
			name:    "nkey with a non-user key",
			mode:    AuthNKey,
			files:   map[string]string{"user.pub": "NOTAUSERKEY", "user.nk": seed},
			wantErr: true,
		},
		{
			name:    "jwt is not supported",
			mode:    "jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeAuthFiles(t, tt.files)
			t.Setenv("NATS_AUTH_DIR", dir)
			t.Setenv("NATS_AUTH", tt.mode)
			t.Setenv("NATS_TOKEN", tt.token)

			cfg, err := LoadAuthConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want.Dir = dir
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestLoadAuthConfig_UnknownMode(t *testing.T) {
	t.Setenv("NATS_AUTH_DIR", t.TempDir())
	t.Setenv("NATS_AUTH", "kerberos")

	_, err := LoadAuthConfig()
	assert.ErrorIs(t, err, ErrUnknownAuthMode)
}

// TestStartNATSNode_AuthModes starts an embedded node per auth mode and
// checks that its own client gets in while an anonymous one does not.
func TestStartNATSNode_AuthModes(t *testing.T) {
	pub, seed := newUserKey(t)

	modes := []struct {
		name string
		auth *AuthConfig
	}{
		{"none", &AuthConfig{Mode: AuthNone}},
		{"token", &AuthConfig{Mode: AuthToken, Token: "s3cret"}},
		{"nkey", &AuthConfig{
			Mode:    AuthNKey,
			NKeyPub: pub,
			Dir:     writeAuthFiles(t, map[string]string{"user.nk": seed}),
		}},
	}

	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			node, err := StartNATSNode(NATSConfig{DataDir: t.TempDir()}, mode.auth)
			require.NoError(t, err)
			defer node.Close()

			assert.True(t, node.IsEmbedded())
			assert.False(t, node.IsLeaf())
			assert.Contains(t, node.Name(), "theme-")
			assert.True(t, node.Conn().IsConnected())
			assert.NotNil(t, node.JetStream())

			anon, err := nats.Connect(node.ClientURL(), nats.Timeout(2*time.Second))
			if mode.auth.Mode == AuthNone {
				require.NoError(t, err)
				anon.Close()
				return
			}
			if err == nil {
				anon.Close()
				t.Fatalf("anonymous connection accepted in %s mode", mode.name)
			}
		})
	}
}

func TestConnectNATS_Remote(t *testing.T) {
	hub, err := StartNATSNode(NATSConfig{Name: "hub", DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	defer hub.Close()

	client, err := ConnectNATS(NATSConfig{URL: hub.ClientURL()}, &AuthConfig{Mode: AuthNone})
	require.NoError(t, err)
	defer client.Close()

	assert.False(t, client.IsEmbedded())
	assert.Equal(t, "hub", hub.Name())
	assert.True(t, client.Conn().IsConnected())

	_, err = ConnectNATS(NATSConfig{}, nil)
	assert.Error(t, err)
}
