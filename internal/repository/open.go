package repository

import (
	"context"
	"log/slog"

	"github.com/kofiasare/hotelmetrics/internal/common"
)

// Open creates the ItemStore selected by cfg.Driver.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (ItemStore, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLiteStore(cfg.DSN, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg, logger)
	}
	return nil, common.InvalidInputErrorf("unknown store driver %q", cfg.Driver)
}
