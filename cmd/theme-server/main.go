// theme-server: serves the theme selector and keeps every instance in sync
//
// The preference lives in a NATS KV bucket. Each instance watches the
// bucket, so a change made in one browser tab, another server or themectl
// re-renders every open page.
//
// Run it as:
//   - Standalone (embedded NATS): ./theme-server
//   - Against a shared server:    NATS_URL=nats://hub:4222 ./theme-server
//
// Environment (see --help for the THEME_* settings):
//
//	NATS_URL   - Remote NATS server (empty = embedded node)
//	NATS_DATA  - Embedded node data directory
//	NATS_AUTH  - Auth mode: none, token, nkey
//	VIA_ADDR   - Bind address (default: :3000)
//	VIA_THEME  - Pico accent for the page chrome
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-via/via"
	"github.com/go-via/via-plugin-picocss/picocss"
	. "github.com/go-via/via/h"

	"github.com/joeblew999/wellnown-theme/pkg/env"
	"github.com/joeblew999/wellnown-theme/pkg/kvstore"
	"github.com/joeblew999/wellnown-theme/pkg/logging"
	"github.com/joeblew999/wellnown-theme/pkg/theme"
	"github.com/joeblew999/wellnown-theme/pkg/viatheme"
)

// Config for theme-server, read from THEME_* env vars and flags.
type Config struct {
	Web struct {
		Addr  string `conf:"default::3000,env:VIA_ADDR"`
		Title string `conf:"default:Themes"`
		Pico  string `conf:"default:cyan,env:VIA_THEME"`
	}
	Store struct {
		Bucket string `conf:"default:theme_prefs"`
	}
	Catalog struct {
		File    string `conf:"help:JSON catalog file (empty = built-in themes)"`
		Default string `conf:"default:mechaCore"`
	}
	Dark struct {
		Mode   string `conf:"default:auto,help:auto|light|dark"`
		System bool   `conf:"default:false,help:system preference used in auto mode"`
	}
	Log struct {
		Level string `conf:"default:info"`
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("Theme Server")
	fmt.Println("============")
	fmt.Println()

	mgr, err := env.New("THEME")
	if err != nil {
		return fmt.Errorf("creating manager: %w", err)
	}
	defer mgr.Close()

	var cfg Config
	if help, err := mgr.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	} else if help != "" {
		fmt.Println(help)
		return nil
	}

	log, _ := logging.New(os.Stdout, logging.ParseLevel(cfg.Log.Level))

	catalog, err := loadCatalog(cfg.Catalog.File, cfg.Catalog.Default)
	if err != nil {
		return err
	}

	mode, err := theme.ParseMode(cfg.Dark.Mode)
	if err != nil {
		return fmt.Errorf("THEME_DARK_MODE: %w", err)
	}
	system := cfg.Dark.System
	darkFlag := theme.NewFlag(mode, func() bool { return system })

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	js, err := mgr.JetStream()
	if err != nil {
		return err
	}
	store, err := kvstore.Open(ctx, js, cfg.Store.Bucket, kvstore.WithLogger(log))
	if err != nil {
		return err
	}

	root := theme.NewRootStyle()
	ctrl := theme.Initialize(theme.Options{
		Catalog:   catalog,
		DefaultID: cfg.Catalog.Default,
		Store:     store,
		Dark:      darkFlag,
		Root:      root,
		Logger:    log,
	})
	defer ctrl.Close()

	hub := viatheme.NewHub()
	stopFlag := darkFlag.Watch(func(bool) { hub.Notify(viatheme.TopicTheme) })
	defer stopFlag()

	go func() {
		err := store.Watch(ctx, func(key, value string) {
			log.Debug("preference changed", "key", key, "value", value)
			ctrl.Reload()
			hub.Notify(viatheme.TopicTheme)
		})
		if err != nil {
			log.Error("store watch stopped", "error", err)
		}
	}()

	pico, picoName := viatheme.GetFromEnv(cfg.Web.Pico)

	v := via.New()
	v.Config(via.Options{
		ServerAddress: cfg.Web.Addr,
		DocumentTitle: cfg.Web.Title,
		LogLvl:        via.LogLevelInfo,
		Plugins: []via.Plugin{
			picocss.WithOptions(picocss.Options{
				Theme:         pico,
				IncludeColors: true,
			}),
		},
	})

	pageOpts := viatheme.PageOptions{Style: root, System: darkFlag, NavBar: navBar}
	viatheme.RegisterPage(v, ctrl, hub, pageOpts)
	pageOpts.Path = "/"
	viatheme.RegisterPage(v, ctrl, hub, pageOpts)

	state := ctrl.State()
	fmt.Printf("  NATS:    %s (bucket %s)\n", mgr.ClientURL(), store.Bucket())
	fmt.Printf("  Theme:   %s, dark=%t, mode=%s\n", state.ActiveID, state.Dark, darkFlag.Mode())
	fmt.Printf("  Chrome:  pico %s\n", picoName)
	fmt.Printf("  Listen:  %s\n", cfg.Web.Addr)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	go v.Start()

	<-ctx.Done()
	fmt.Println("\nShutting down...")
	return nil
}

func loadCatalog(file, defaultID string) (theme.Catalog, error) {
	catalog := theme.Builtin()
	if file != "" {
		var err error
		if catalog, err = theme.LoadCatalogFile(file); err != nil {
			return nil, err
		}
	}
	if err := catalog.Validate(defaultID); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return catalog, nil
}

func navBar(active string) H {
	navItem := func(name, href string) H {
		if name == active {
			return Li(A(Strong(Text(name)), Href(href)))
		}
		return Li(A(Text(name), Href(href)))
	}
	return Section(
		Nav(
			Ul(Li(Strong(Text("Theme Server")))),
			Ul(navItem("Themes", viatheme.DefaultPath)),
		),
	)
}
