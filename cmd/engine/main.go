package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/httpapi"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/poll"
	"jobhunt-workbench/internal/scrape"
	"jobhunt-workbench/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "engine:", err)
		os.Exit(1)
	}
}

func run() error {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBHUNT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if err := config.OverlayCompanies(&cfg, filepath.Join(dataDir, "companies.yml")); err != nil {
			return cfg, fmt.Errorf("companies overlay: %w", err)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	log := logging.New(cfg.App.LogLevel)
	defer func() { _ = log.Sync() }()

	_, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warn("config warning", "msg", w)
	}

	lock, err := store.LockDataDir(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	dbPath := filepath.Join(dataDir, "jobhunt.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if n, err := store.CleanupOldJobs(db.Pool); err != nil {
		log.Warn("cleanup old jobs failed", "err", err)
	} else if n > 0 {
		log.Info("cleaned up old jobs", "deleted", n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()
	runner := &poll.Runner{
		DB:  db.Pool,
		Hub: hub,
		Log: log.With("component", "ingest"),
		Ingest: func(ctx context.Context, pool *sql.DB, cfg config.Config, onNewJob func()) (int, error) {
			return scrape.RunOnce(ctx, pool, cfg, log.With("component", "scrape"), onNewJob)
		},
	}
	runner.Start(ctx, &cfgVal)

	mux := http.NewServeMux()
	mux.Handle("/", httpapi.Handler(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Log:         log,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Ingest:      runner,
		BaseCtx:     ctx,
	}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if token := os.Getenv("JOBHUNT_SHUTDOWN_TOKEN"); token != "" {
		mux.HandleFunc("/shutdown", shutdownHandler(token, srv))
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info("engine listening", "addr", "http://"+addr, "db", dbPath, "config", userCfgPath)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	if _, err := db.Pool.Exec(`PRAGMA wal_checkpoint(TRUNCATE);`); err != nil {
		log.Warn("wal checkpoint failed", "err", err)
	}
	return nil
}
