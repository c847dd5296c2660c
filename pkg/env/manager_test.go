package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Theme struct {
		Default string `conf:"default:mechaCore"`
		Dark    string `conf:"default:auto"`
	}
	NATS struct {
		Token string `conf:"mask"`
	}
}

// withArgs replaces os.Args so conf.Parse does not see the test binary's flags.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"theme-server"}, args...)
	t.Cleanup(func() { os.Args = saved })
}

func isolateNATS(t *testing.T) {
	t.Helper()
	t.Setenv("NATS_URL", "")
	t.Setenv("NATS_HUB", "")
	t.Setenv("NATS_AUTH", "")
	t.Setenv("NATS_AUTH_DIR", t.TempDir())
}

func TestManager_ParseWithoutNATS(t *testing.T) {
	withArgs(t)
	t.Setenv("THEME_THEME_DEFAULT", "ghibliDream")
	t.Setenv("THEME_NATS_TOKEN", "ref+echo://s3cret")

	mgr, err := New("THEME", WithoutNATS())
	require.NoError(t, err)
	defer mgr.Close()

	var cfg testConfig
	help, err := mgr.Parse(&cfg)
	require.NoError(t, err)
	assert.Empty(t, help)

	assert.Equal(t, "ghibliDream", cfg.Theme.Default)
	assert.Equal(t, "auto", cfg.Theme.Dark)
	assert.Equal(t, "s3cret", cfg.NATS.Token)

	assert.Equal(t, "THEME", mgr.Prefix())
	assert.Nil(t, mgr.Node())
	assert.Nil(t, mgr.NC())
	assert.Empty(t, mgr.ClientURL())
	_, err = mgr.JetStream()
	assert.ErrorIs(t, err, ErrNATSDisabled)
}

func TestManager_ParseHelp(t *testing.T) {
	withArgs(t, "--help")

	mgr, err := New("THEME", WithoutNATS())
	require.NoError(t, err)

	var cfg testConfig
	help, err := mgr.Parse(&cfg)
	require.NoError(t, err)
	assert.Contains(t, help, "THEME_THEME_DEFAULT")
}

func TestManager_ParseAfterClose(t *testing.T) {
	mgr, err := New("THEME", WithoutNATS())
	require.NoError(t, err)
	require.NoError(t, mgr.Close())
	require.NoError(t, mgr.Close())

	var cfg testConfig
	_, err = mgr.Parse(&cfg)
	assert.Error(t, err)
}

func TestManager_EmbeddedThenRemote(t *testing.T) {
	isolateNATS(t)

	embedded, err := New("THEME", WithDataDir(t.TempDir()), WithName("theme-a"))
	require.NoError(t, err)
	defer embedded.Close()

	require.NotNil(t, embedded.Node())
	assert.True(t, embedded.Node().IsEmbedded())
	assert.Equal(t, "theme-a", embedded.Node().Name())
	js, err := embedded.JetStream()
	require.NoError(t, err)
	assert.NotNil(t, js)

	remote, err := New("THEME", WithNATSURL(embedded.ClientURL()))
	require.NoError(t, err)
	defer remote.Close()

	assert.False(t, remote.Node().IsEmbedded())
	assert.True(t, remote.NC().IsConnected())
}
