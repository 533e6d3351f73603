package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/calc"
	"github.com/kofiasare/hotelmetrics/internal/catalog"
	"github.com/kofiasare/hotelmetrics/internal/common"
	"github.com/kofiasare/hotelmetrics/internal/dedup"
	"github.com/kofiasare/hotelmetrics/internal/export"
	"github.com/kofiasare/hotelmetrics/internal/extract"
	"github.com/kofiasare/hotelmetrics/internal/ingest"
	"github.com/kofiasare/hotelmetrics/internal/repository"
)

var (
	flagDepartment string
	flagOutput     string
	flagFrom       string
	flagTo         string
	flagPeriod     string
	flagStore      bool
)

// app bundles the wired pipeline services for the CLI commands.
type app struct {
	cfg    *common.Config
	store  repository.ItemStore
	ingest *ingest.Service
	engine *calc.Engine
	export *export.Service
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// buildApp wires the pipeline from environment configuration.
func buildApp(ctx context.Context) (*app, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

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
		return nil, fmt.Errorf("opening item store: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.CatalogPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading KPI catalog: %w", err)
	}
	rules, err := extract.LoadRules(cfg.Catalog.RulesPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading extraction rules: %w", err)
	}

	pipeline := extract.NewPipeline(rules, nil)
	gate := dedup.NewGate(store, cfg.Ingest.DuplicateEpsilon, nil)

	return &app{
		cfg:    cfg,
		store:  store,
		ingest: ingest.NewService(pipeline, cat, gate, store, nil),
		engine: calc.NewEngine(cat, nil),
		export: export.NewService(store, nil),
	}, nil
}

// resolveDepartment resolves the --department flag, falling back to the
// configured default.
func resolveDepartment(cfg *common.Config) (constants.Department, error) {
	raw := flagDepartment
	if raw == "" {
		raw = cfg.Ingest.DefaultDepartment
	}
	dept, ok := constants.CanonicalizeDepartment(raw)
	if !ok {
		return "", fmt.Errorf("unknown department %q (want one of %v)", raw, constants.DepartmentStrings())
	}
	return dept, nil
}

var rootCmd = &cobra.Command{
	Use:   "hotelmetrics",
	Short: "Extract, deduplicate and calculate hotel KPIs from operational documents",
	Long: `hotelmetrics ingests operational reports (PDF, CSV, XLSX), extracts
department KPI readings from them, resolves metric labels against the KPI
catalog, drops duplicates, and stores the rest. Derived KPIs such as
occupancy rate, ADR and RevPAR are computed on demand over daily, weekly,
monthly, quarterly or yearly buckets.

Configuration is environment-driven; see DB_URL, DB_DRIVER, INBOX_DIRS,
DEFAULT_DEPARTMENT.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDepartment, "department", "d", "",
		"Department the data belongs to (default: DEFAULT_DEPARTMENT env)")
}
