package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kpi_items (
	id          UUID PRIMARY KEY,
	department  TEXT NOT NULL,
	kpi_name    TEXT NOT NULL,
	value       DOUBLE PRECISION,
	text_value  TEXT,
	unit        TEXT NOT NULL DEFAULT '',
	date        DATE NOT NULL,
	source      TEXT NOT NULL,
	source_file TEXT NOT NULL DEFAULT '',
	item_key    TEXT NOT NULL DEFAULT '',
	metadata    JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_kpi_items_identity
	ON kpi_items(department, date, kpi_name, source_file, item_key);
CREATE INDEX IF NOT EXISTS ix_kpi_items_dept_date
	ON kpi_items(department, date);
`

// PostgresStore implements ItemStore on Postgres via a pgx pool wrapped as
// *sql.DB.
type PostgresStore struct {
	db     *sql.DB
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore creates a pgx pool, wraps it for database/sql, and ensures
// the schema exists.
func NewPostgresStore(ctx context.Context, cfg Config, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "dsn", cfg.DSN)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "hotelmetrics"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("successfully connected to database")
	return &PostgresStore{db: db, pool: pool, logger: logger}, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) InsertItems(ctx context.Context, points []entity.RawDataPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kpi_items
			(id, department, kpi_name, value, text_value, unit, date, source, source_file, item_key, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::jsonb, $12)
		ON CONFLICT (department, date, kpi_name, source_file, item_key) DO NOTHING`)
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
			p.Day(),
			string(p.Source),
			p.SourceFile,
			identityKey(p),
			marshalMetadata(p.Metadata),
			createdAt,
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

func (s *PostgresStore) QueryItems(ctx context.Context, department constants.Department, from, to *time.Time) ([]entity.StoredItem, error) {
	query := `
		SELECT id, department, kpi_name, value, text_value, unit, date, source, source_file, created_at
		FROM kpi_items
		WHERE department = $1`
	args := []interface{}{string(department)}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
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
		var (
			item entity.StoredItem
			id   string
			dept string
			src  string
		)
		if err := rows.Scan(&id, &dept, &item.KPIName, &item.Value, &item.TextValue,
			&item.Unit, &item.Date, &src, &item.SourceFile, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		if parsed, err := uuid.Parse(id); err == nil {
			item.ID = parsed
		}
		item.Department = constants.Department(dept)
		item.Source = constants.Source(src)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Close() error {
	err := s.db.Close()
	s.pool.Close()
	return err
}
