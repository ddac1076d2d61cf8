package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/rfm-insight/internal/core/config"
	"github.com/aevon-lab/rfm-insight/internal/dashboard"
	"github.com/aevon-lab/rfm-insight/internal/migrations"
	"github.com/aevon-lab/rfm-insight/internal/server"
	"github.com/aevon-lab/rfm-insight/internal/snapshot"
	"github.com/aevon-lab/rfm-insight/internal/source"
	"github.com/aevon-lab/rfm-insight/internal/source/csvfile"
	"github.com/aevon-lab/rfm-insight/internal/source/postgres"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "insight.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	reloadInterval, err := cfg.Dataset.EffectiveReloadInterval()
	if err != nil {
		slog.Error("Invalid reload interval", "value", cfg.Dataset.ReloadInterval, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Data Source
	var repo source.Repository
	switch cfg.Source.Type {
	case "csv":
		loader, err := csvfile.New(cfg.Source.Path, cfg.Source.MappingPath)
		if err != nil {
			slog.Error("Failed to initialize csv source", "error", err)
			os.Exit(1)
		}
		repo = loader
		slog.Info("CSV source initialized", "path", cfg.Source.Path)

	case "postgres":
		adapter, err := postgres.NewAdapter(
			cfg.Source.DSN,
			cfg.Source.MaxOpenConns,
			cfg.Source.MaxIdleConns,
		)
		if err != nil {
			slog.Error("Failed to initialize postgres source", "error", err)
			os.Exit(1)
		}
		defer adapter.Close()

		// 2.1. Run Database Migrations
		if err := migrations.RunMigrations(adapter.DB(), cfg.Source.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		repo = adapter

	default:
		slog.Error("Unsupported source type", "type", cfg.Source.Type)
		os.Exit(1)
	}

	// 3. Load Initial Snapshot
	// A failed load publishes an empty snapshot; the service still starts.
	store := snapshot.NewStore(repo)
	store.Reload(context.Background())

	// 4. Initialize Dashboard (query API)
	dashboardSvc := dashboard.NewService(store, cfg.Dataset.Fallback.ToFallback())

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	dashboardSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	if reloadInterval > 0 {
		scheduler := snapshot.NewScheduler(store, reloadInterval)
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	} else {
		slog.Info("Periodic dataset reload disabled by config")
	}

	// HTTP server blocks until ctx is cancelled.
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
