// themectl: inspect and change the shared theme preference from a terminal
//
// It reads and writes the same NATS KV bucket as theme-server, so every
// open page follows what it sets.
//
// Usage:
//
//	themectl list
//	themectl set ghibliDream
//	themectl dark toggle
//	themectl system          # follow the terminal background again
//	themectl css > theme.css
//
// Environment:
//
//	NATS_URL     - Server holding the bucket (default: nats://127.0.0.1:4222)
//	NATS_AUTH    - none, token, nkey
//	THEME_BUCKET - KV bucket (default: theme_prefs)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/nats-io/nats.go"

	"github.com/joeblew999/wellnown-theme/pkg/env"
	"github.com/joeblew999/wellnown-theme/pkg/kvstore"
	"github.com/joeblew999/wellnown-theme/pkg/logging"
	"github.com/joeblew999/wellnown-theme/pkg/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	bucket := flag.String("bucket", env.GetEnv("THEME_BUCKET", env.DefaultBucket), "KV bucket holding the preference")
	catalogFile := flag.String("catalog", "", "JSON catalog file (empty = built-in themes)")
	defaultID := flag.String("default", theme.DefaultID, "Theme used when none is stored")
	timeout := flag.Duration("timeout", 5*time.Second, "Timeout for NATS operations")
	noColor := flag.Bool("no-color", false, "Print colors as values only")
	verbose := flag.Bool("v", false, "Log controller activity to stderr")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		fmt.Fprintln(flag.CommandLine.Output(), "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log, _ := logging.New(os.Stderr, level)

	catalog := theme.Builtin()
	if *catalogFile != "" {
		var err error
		if catalog, err = theme.LoadCatalogFile(*catalogFile); err != nil {
			return err
		}
	}
	if err := catalog.Validate(*defaultID); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	mgr, err := env.New("THEMECTL", env.WithNATSURL(env.GetEnv("NATS_URL", nats.DefaultURL)))
	if err != nil {
		return fmt.Errorf("creating manager: %w", err)
	}
	defer mgr.Close()

	js, err := mgr.JetStream()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := kvstore.Open(ctx, js, *bucket, kvstore.WithTimeout(*timeout), kvstore.WithLogger(log))
	if err != nil {
		return err
	}

	output := termenv.NewOutput(os.Stdout)
	darkFlag := theme.NewFlag(theme.ModeAuto, output.HasDarkBackground)
	root := theme.NewRootStyle()

	ctrl := theme.Initialize(theme.Options{
		Catalog:   catalog,
		DefaultID: *defaultID,
		Store:     store,
		Dark:      darkFlag,
		Root:      root,
		Logger:    log,
	})
	defer ctrl.Close()

	c := &cli{
		ctrl:     ctrl,
		flag:     darkFlag,
		root:     root,
		out:      os.Stdout,
		swatches: !*noColor && output.ColorProfile() != termenv.Ascii,
	}
	return c.run(flag.Args())
}
