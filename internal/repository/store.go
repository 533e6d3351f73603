// Package repository provides the KPI item store behind a small port: batch
// insert and range-scoped read-by-department. SQLite is the default backend;
// Postgres is available for shared deployments.
//
// Concurrent duplicate ingestion is made safe at the storage layer: a unique
// index on (department, date, kpi_name, source_file, item_key) acts as an
// idempotency key, and inserts ignore conflicts, so the dedup gate's
// read-then-write window cannot produce duplicate rows. item_key
// discriminates distinct same-day measurements from one file, so only a true
// re-ingestion of the same content collides.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

// ItemStore is the persistence boundary the pipeline depends on.
type ItemStore interface {
	// InsertItems writes a batch of points in a single transaction and
	// returns how many rows were actually inserted (conflicts are ignored).
	InsertItems(ctx context.Context, points []entity.RawDataPoint) (int, error)

	// QueryItems reads items for a department. from/to bound the item date
	// (inclusive); either may be nil.
	QueryItems(ctx context.Context, department constants.Department, from, to *time.Time) ([]entity.StoredItem, error)

	Close() error
}

// Config holds store configuration for either backend.
type Config struct {
	Driver           string // "sqlite" or "postgres"
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

const dateLayout = "2006-01-02"

func marshalMetadata(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

func unitOf(p entity.RawDataPoint) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata["unit"]
}

// identityKey is the content discriminator inside the idempotency index.
// Generic table rows share one kpi_name per file and day, so they key on
// their table/row coordinates and matched text; labeled metrics key on the
// rounded value (a changed value is a correction, stored as a new entry).
func identityKey(p entity.RawDataPoint) string {
	if p.Metadata != nil {
		if tbl, ok := p.Metadata["table"]; ok {
			return fmt.Sprintf("t%s:r%s:%s", tbl, p.Metadata["row"], p.Metadata["match"])
		}
	}
	if p.Value != nil {
		return fmt.Sprintf("v%.2f", *p.Value)
	}
	if p.TextValue != nil {
		return "s:" + *p.TextValue
	}
	return ""
}
