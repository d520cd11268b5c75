package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite wraps a local sqlite database handle.
type SQLite struct {
	DB *sql.DB
}

// OpenSQLite opens (or creates) the database file, creating parent directories.
func OpenSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// single writer; sqlite serialises writes anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	logger.Info("opened sqlite directory", zap.String("path", path))
	return &SQLite{DB: db}, nil
}

// Close releases the handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite not configured")
	}
	return s.DB.PingContext(ctx)
}
