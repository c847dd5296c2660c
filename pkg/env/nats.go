// nats.go: NATS connectivity for the theme server and CLI
//
// Two topologies:
//
//	EMBEDDED: the process runs its own JetStream server, optionally as a
//	          leaf of a hub (NATS_HUB). Works offline.
//	REMOTE:   the process connects to NATS_URL as a plain client.
//
// Either way callers get a JetStream context to open the theme bucket on.
package env

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// ErrNATSDisabled is returned by Manager accessors when NATS was not started.
var ErrNATSDisabled = errors.New("NATS is disabled")

// NATSConfig holds NATS server configuration
type NATSConfig struct {
	URL     string // Remote server (set = no embedded server)
	Name    string // Server / connection name
	Port    int    // Client port (0 = random)
	HubURL  string // Hub URL for leaf mode (empty = standalone)
	DataDir string // Data directory (empty = temporary)
}

// NATSNode wraps a client connection and, in embedded mode, its server.
type NATSNode struct {
	server *server.Server
	conn   *nats.Conn
	js     jetstream.JetStream
	config NATSConfig
}

// StartNATSNode creates and starts an embedded JetStream server and
// connects to it.
func StartNATSNode(cfg NATSConfig, authCfg *AuthConfig) (*NATSNode, error) {
	if cfg.Name == "" {
		cfg.Name = "theme-" + uuid.New().String()[:8]
	}

	opts := &server.Options{
		ServerName: cfg.Name,
		Port:       cfg.Port,
		JetStream:  true,
		StoreDir:   cfg.DataDir,
		NoLog:      true,
	}
	if cfg.Port == 0 {
		opts.Port = server.RANDOM_PORT
	}

	if authCfg != nil {
		if err := ConfigureAuth(opts, authCfg); err != nil {
			return nil, fmt.Errorf("configuring auth: %w", err)
		}
	}

	if cfg.HubURL != "" {
		u, err := url.Parse(cfg.HubURL)
		if err != nil {
			return nil, fmt.Errorf("parsing hub URL: %w", err)
		}
		opts.LeafNode = server.LeafNodeOpts{
			Remotes: []*server.RemoteLeafOpts{
				{URLs: []*url.URL{u}},
			},
		}
	} else if cfg.Port > 0 {
		// Leaf port = client port + 1000
		opts.LeafNode = server.LeafNodeOpts{Port: cfg.Port + 1000}
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	go ns.Start()

	if !ns.ReadyForConnections(15 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("server not ready within 15s")
	}

	node, err := connect(ns.ClientURL(), cfg, authCfg)
	if err != nil {
		ns.Shutdown()
		return nil, err
	}
	node.server = ns
	return node, nil
}

// ConnectNATS connects to a remote server at cfg.URL.
func ConnectNATS(cfg NATSConfig, authCfg *AuthConfig) (*NATSNode, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("connecting: no NATS URL")
	}
	if cfg.Name == "" {
		cfg.Name = "theme-" + uuid.New().String()[:8]
	}
	return connect(cfg.URL, cfg, authCfg)
}

func connect(serverURL string, cfg NATSConfig, authCfg *AuthConfig) (*NATSNode, error) {
	connOpts := []nats.Option{nats.Name(cfg.Name)}
	if authCfg != nil {
		clientOpts, err := ClientOptions(authCfg)
		if err != nil {
			return nil, fmt.Errorf("getting client auth options: %w", err)
		}
		connOpts = append(connOpts, clientOpts...)
	}

	nc, err := nats.Connect(serverURL, connOpts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", serverURL, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("creating jetstream: %w", err)
	}

	return &NATSNode{conn: nc, js: js, config: cfg}, nil
}

// ClientURL returns the URL clients should use to reach this node.
func (n *NATSNode) ClientURL() string {
	if n.server != nil {
		return n.server.ClientURL()
	}
	return n.conn.ConnectedUrl()
}

// Conn returns the NATS connection
func (n *NATSNode) Conn() *nats.Conn {
	return n.conn
}

// JetStream returns the JetStream context
func (n *NATSNode) JetStream() jetstream.JetStream {
	return n.js
}

// Name returns the node name
func (n *NATSNode) Name() string {
	return n.config.Name
}

// IsEmbedded reports whether this process runs the server.
func (n *NATSNode) IsEmbedded() bool {
	return n.server != nil
}

// IsLeaf returns true if connected to a hub
func (n *NATSNode) IsLeaf() bool {
	return n.config.HubURL != ""
}

// Close closes the connection and shuts the embedded server down.
func (n *NATSNode) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}
	if n.server != nil {
		n.server.Shutdown()
		n.server.WaitForShutdown()
	}
	return nil
}
