package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/remote"
	"jobhunt-workbench/internal/tui"
	"jobhunt-workbench/internal/workbench"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "workbench:", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := os.Getenv("JOBHUNT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	cfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	if u := os.Getenv("JOBHUNT_ENGINE_URL"); u != "" {
		cfg.Workbench.EngineURL = u
	}

	// the terminal belongs to the UI, so logs go to a file
	log := logging.New(cfg.App.LogLevel, filepath.Join(dataDir, "workbench.log"))
	defer func() { _ = log.Sync() }()

	timeout := time.Duration(cfg.Workbench.RequestTimeoutSeconds) * time.Second
	client := remote.New(remote.Config{
		BaseURL:           cfg.Workbench.EngineURL,
		Timeout:           timeout,
		RequestsPerSecond: cfg.Workbench.RequestsPerSecond,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	wb := workbench.New(client,
		workbench.WithLogger(log),
		workbench.WithTimeout(timeout),
		workbench.WithContext(ctx),
	)

	log.Info("workbench starting", "engine_url", cfg.Workbench.EngineURL)
	p := tea.NewProgram(tui.New(wb), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
