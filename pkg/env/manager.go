// manager.go: config, secrets and NATS behind one handle
//
// Usage:
//
//	type Config struct {
//	    Theme struct {
//	        Default string `conf:"default:mechaCore"`
//	    }
//	}
//
//	func run() error {
//	    mgr, err := env.New("THEME")
//	    if err != nil {
//	        return err
//	    }
//	    defer mgr.Close()
//
//	    var cfg Config
//	    if help, err := mgr.Parse(&cfg); err != nil || help != "" {
//	        ...
//	    }
//	    js, err := mgr.JetStream()
//	    ...
//	    store, err := kvstore.Open(ctx, js, env.DefaultBucket)
//	}
package env

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ardanlabs/conf/v3"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Manager resolves secrets, parses config with ardanlabs/conf and owns
// the NATS connection.
type Manager struct {
	prefix string
	opts   Options

	mu       sync.RWMutex
	closed   bool
	natsNode *NATSNode
}

// Options for Manager configuration
type Options struct {
	// NATS settings
	NATSURL  string // Remote server (empty = embedded node)
	HubURL   string // NATS hub URL for the embedded node (empty = standalone)
	DataDir  string // Data directory (empty = temporary)
	NATSPort int    // NATS client port (0 = random)
	NATSName string // Node name

	// Disable NATS completely (for config-only use)
	DisableNATS bool
}

// Option is a functional option for Manager
type Option func(*Options)

// WithNATSURL connects to a remote server instead of embedding one.
func WithNATSURL(url string) Option {
	return func(o *Options) {
		o.NATSURL = url
	}
}

// WithHub sets the NATS hub URL for mesh connectivity
func WithHub(url string) Option {
	return func(o *Options) {
		o.HubURL = url
	}
}

// WithDataDir sets the NATS data directory for persistence
func WithDataDir(path string) Option {
	return func(o *Options) {
		o.DataDir = path
	}
}

// WithPort sets the NATS client port
func WithPort(port int) Option {
	return func(o *Options) {
		o.NATSPort = port
	}
}

// WithName sets the node name.
func WithName(name string) Option {
	return func(o *Options) {
		o.NATSName = name
	}
}

// WithoutNATS disables NATS (config-only mode)
func WithoutNATS() Option {
	return func(o *Options) {
		o.DisableNATS = true
	}
}

// New creates a Manager. The prefix namespaces env vars for
// ardanlabs/conf (e.g. THEME_WEB_ADDR). Unless WithoutNATS is given it
// connects to NATS_URL or starts an embedded node.
func New(prefix string, opts ...Option) (*Manager, error) {
	o := Options{
		NATSURL:  GetNATSURL(),
		HubURL:   os.Getenv("NATS_HUB"),
		DataDir:  os.Getenv("NATS_DATA"),
		NATSName: GetEnv("NATS_NAME", ""),
		NATSPort: GetEnvInt("NATS_PORT", 0),
	}

	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		prefix: prefix,
		opts:   o,
	}

	if o.DisableNATS {
		return m, nil
	}

	// Secrets first: NATS_TOKEN may itself be a ref+.
	if err := ResolveEnvSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	authCfg, err := LoadAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("loading auth config: %w", err)
	}

	natsCfg := NATSConfig{
		URL:     o.NATSURL,
		Name:    o.NATSName,
		Port:    o.NATSPort,
		HubURL:  o.HubURL,
		DataDir: o.DataDir,
	}

	var node *NATSNode
	if o.NATSURL != "" {
		node, err = ConnectNATS(natsCfg, authCfg)
	} else {
		node, err = StartNATSNode(natsCfg, authCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("starting NATS node: %w", err)
	}
	m.natsNode = node

	return m, nil
}

// Parse resolves secrets and then parses config from environment
// variables and command line args.
//
// The cfg parameter must be a pointer to a struct with conf tags.
// Returns help text if --help was provided.
func (m *Manager) Parse(cfg interface{}) (string, error) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return "", fmt.Errorf("manager is closed")
	}

	if err := ResolveEnvSecrets(); err != nil {
		return "", fmt.Errorf("resolving secrets: %w", err)
	}

	help, err := conf.Parse(m.prefix, cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return help, nil
		}
		return "", fmt.Errorf("parsing config: %w", err)
	}
	return "", nil
}

// Close shuts down the manager and disconnects from NATS
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.natsNode != nil {
		if err := m.natsNode.Close(); err != nil {
			return fmt.Errorf("closing NATS: %w", err)
		}
	}
	return nil
}

// Prefix returns the environment variable prefix
func (m *Manager) Prefix() string {
	return m.prefix
}

// Node returns the NATS node (nil if NATS disabled)
func (m *Manager) Node() *NATSNode {
	return m.natsNode
}

// NC returns the NATS connection (nil if NATS disabled)
func (m *Manager) NC() *nats.Conn {
	if m.natsNode == nil {
		return nil
	}
	return m.natsNode.Conn()
}

// JetStream returns the JetStream context.
func (m *Manager) JetStream() (jetstream.JetStream, error) {
	if m.natsNode == nil {
		return nil, ErrNATSDisabled
	}
	return m.natsNode.JetStream(), nil
}

// ClientURL returns the NATS client URL (empty if NATS disabled)
func (m *Manager) ClientURL() string {
	if m.natsNode == nil {
		return ""
	}
	return m.natsNode.ClientURL()
}
