package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/strata/internal/bindings"
	"github.com/1broseidon/strata/internal/config"
	"github.com/1broseidon/strata/internal/wm"
	"github.com/1broseidon/strata/internal/x11"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default ~/.config/strata/config.yaml)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		log.Fatalf("strata: %v", err)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.Info("configuration loaded",
		"workspaces", len(cfg.Workspaces),
		"keybindings", len(cfg.Keybindings))

	conn, err := x11.Connect()
	if err != nil {
		return err
	}

	tables, err := bindings.Resolve(conn.XUtil(), cfg.Keybindings, cfg.Mousebindings)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to resolve bindings: %w", err)
	}

	manager, err := wm.New(conn, cfg, tables)
	if err != nil {
		conn.Close()
		return err
	}
	if err := manager.Startup(); err != nil {
		manager.Shutdown()
		return fmt.Errorf("startup failed: %w", err)
	}
	slog.Info("strata started")

	// The event wait has no cancellation primitive; a signal tears the
	// connection down out-of-band, which makes the blocked wait return.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		manager.Shutdown()
	}()

	err = manager.Run()
	manager.Shutdown()
	if err != nil {
		return fmt.Errorf("event loop failed: %w", err)
	}
	return nil
}
