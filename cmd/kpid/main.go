package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/calc"
	"github.com/kofiasare/hotelmetrics/internal/catalog"
	"github.com/kofiasare/hotelmetrics/internal/common"
	"github.com/kofiasare/hotelmetrics/internal/dedup"
	"github.com/kofiasare/hotelmetrics/internal/export"
	"github.com/kofiasare/hotelmetrics/internal/extract"
	"github.com/kofiasare/hotelmetrics/internal/ingest"
	"github.com/kofiasare/hotelmetrics/internal/repository"
	"github.com/kofiasare/hotelmetrics/internal/server"
)

func main() {
	cfg := common.LoadConfig()

	logger, _ := zap.NewProduction()
	if cfg.Server.DevMode {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, nil)
	if err != nil {
		log.Fatalf("opening item store: %v", err)
	}
	defer store.Close()

	cat, err := catalog.Load(cfg.Catalog.CatalogPath)
	if err != nil {
		log.Fatalf("loading KPI catalog: %v", err)
	}
	rules, err := extract.LoadRules(cfg.Catalog.RulesPath)
	if err != nil {
		log.Fatalf("loading extraction rules: %v", err)
	}

	pipeline := extract.NewPipeline(rules, nil)
	gate := dedup.NewGate(store, cfg.Ingest.DuplicateEpsilon, nil)
	ingestSvc := ingest.NewService(pipeline, cat, gate, store, nil)
	engine := calc.NewEngine(cat, nil)
	exportSvc := export.NewService(store, nil)

	// Optional drop-folder watcher alongside the HTTP API. Files are handed
	// to a worker pool so a slow PDF does not stall the watcher.
	if len(cfg.Ingest.InboxDirs) > 0 {
		queue := ingest.NewQueue(ingestSvc, nil)
		defer func() {
			drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			queue.Shutdown(drainCtx)
		}()
		startInboxWatcher(ctx, cfg, queue, logger)
	}

	srv := server.New(cfg, ingestSvc, engine, store, exportSvc, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("http serve: %v", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
}

func startInboxWatcher(ctx context.Context, cfg *common.Config, queue *ingest.Queue, logger *zap.Logger) {
	defaultDept, ok := constants.CanonicalizeDepartment(cfg.Ingest.DefaultDepartment)
	if !ok {
		logger.Fatal("unknown default department", zap.String("department", cfg.Ingest.DefaultDepartment))
	}

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.InboxDirs,
		InitialScan: true,
		Debounce:    cfg.Ingest.WatchDebounce,
	})
	if err != nil {
		logger.Fatal("starting inbox watcher", zap.Error(err))
	}
	logger.Info("watching inbox directories", zap.Strings("dirs", cfg.Ingest.InboxDirs))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-events:
				if !ok {
					return
				}
				_ = queue.Enqueue(ctx, ingest.Job{
					Path:        path,
					Department:  defaultDept,
					SubmittedAt: time.Now(),
				})
			case err, ok := <-errs:
				if !ok {
					return
				}
				logger.Warn("inbox watcher error", zap.Error(err))
			}
		}
	}()
}
