package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kpi_items (
	id          TEXT PRIMARY KEY,
	department  TEXT NOT NULL,
	kpi_name    TEXT NOT NULL,
	value       REAL,
	text_value  TEXT,
	unit        TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL,
	source      TEXT NOT NULL,
	source_file TEXT NOT NULL DEFAULT '',
	item_key    TEXT NOT NULL DEFAULT '',
	metadata    TEXT,
	created_at  TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_kpi_items_identity
	ON kpi_items(department, date, kpi_name, source_file, item_key);
CREATE INDEX IF NOT EXISTS ix_kpi_items_dept_date
	ON kpi_items(department, date);
`

// SQLiteStore implements ItemStore on a single SQLite database file.
// Pass ":memory:" as the DSN for in-memory databases (testing).
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(dsn string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating db directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Debug("sqlite store ready", "dsn", dsn)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) InsertItems(ctx context.Context, points []entity.RawDataPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO kpi_items
			(id, department, kpi_name, value, text_value, unit, date, source, source_file, item_key, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range points {
		id := p.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		res, err := stmt.ExecContext(ctx,
			id.String(),
			string(p.Department),
			p.DataType,
			p.Value,
			p.TextValue,
			unitOf(p),
			p.Day().Format(dateLayout),
			string(p.Source),
			p.SourceFile,
			identityKey(p),
			marshalMetadata(p.Metadata),
			createdAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("insert item %s: %w", p.DataType, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert transaction: %w", err)
	}

	s.logger.Debug("store.insert.ok", "requested", len(points), "inserted", inserted)
	return inserted, nil
}

func (s *SQLiteStore) QueryItems(ctx context.Context, department constants.Department, from, to *time.Time) ([]entity.StoredItem, error) {
	query := `
		SELECT id, department, kpi_name, value, text_value, unit, date, source, source_file, created_at
		FROM kpi_items
		WHERE department = ?`
	args := []interface{}{string(department)}
	if from != nil {
		query += ` AND date >= ?`
		args = append(args, from.Format(dateLayout))
	}
	if to != nil {
		query += ` AND date <= ?`
		args = append(args, to.Format(dateLayout))
	}
	query += ` ORDER BY date, kpi_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query items", "department", department, "error", err)
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []entity.StoredItem
	for rows.Next() {
		item, err := scanStoredItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStoredItem(r rowScanner) (entity.StoredItem, error) {
	var (
		item      entity.StoredItem
		id        string
		dept      string
		date      string
		source    string
		createdAt string
	)
	if err := r.Scan(&id, &dept, &item.KPIName, &item.Value, &item.TextValue,
		&item.Unit, &date, &source, &item.SourceFile, &createdAt); err != nil {
		return entity.StoredItem{}, fmt.Errorf("scanning item row: %w", err)
	}
	if parsed, err := uuid.Parse(id); err == nil {
		item.ID = parsed
	}
	item.Department = constants.Department(dept)
	item.Source = constants.Source(source)
	if d, err := time.Parse(dateLayout, date); err == nil {
		item.Date = d
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		item.CreatedAt = t
	}
	return item, nil
}
