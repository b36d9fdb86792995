package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KasumiMercury/primind-priority-board/internal/observability/tracing"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_documents (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite stores each document as one row in a local database file.
type SQLite struct {
	conn    *sql.DB
	path    string
	writeMu sync.Mutex
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSQLiteOpen, err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrSQLiteOpen, err)
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ensure schema: %w", ErrSQLiteOpen, err)
	}

	slog.InfoContext(ctx, "sqlite store opened", slog.String("path", path))

	return &SQLite{conn: conn, path: path}, nil
}

func (s *SQLite) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, BackendSQLite, "select", key)
	defer span.End()

	var data []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv_documents WHERE key = ?`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			tracing.RecordError(span, nil)
			return nil, nil
		}
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	tracing.RecordError(span, nil)
	return data, nil
}

func (s *SQLite) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	ctx, span := tracing.StartStoreOperationSpan(ctx, BackendSQLite, "upsert", key)
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv_documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UnixMilli(),
	)
	tracing.RecordError(span, err)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) Backend() string { return BackendSQLite }

func (s *SQLite) Path() string { return s.path }
