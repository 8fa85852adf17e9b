package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockDash/internal/logger"
	"StockDash/internal/model"
)

// SQLiteStore persists state to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: logger.Component("store")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			symbol   TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			added_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          REAL,
			change         REAL,
			change_percent REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_symbol_ts ON quote_snapshots(symbol, timestamp)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec %q: %w", q[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadWatchlist(ctx context.Context) ([]string, bool, error) {
	var marker string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'watchlist_saved'`).Scan(&marker)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read watchlist marker: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT symbol FROM watchlist ORDER BY position`)
	if err != nil {
		return nil, false, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, false, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, true, rows.Err()
}

func (s *SQLiteStore) SaveWatchlist(ctx context.Context, symbols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Keep the original added_at of symbols that stay on the list.
	added := map[string]int64{}
	rows, err := tx.QueryContext(ctx, `SELECT symbol, added_at FROM watchlist`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var sym string
		var at int64
		if err := rows.Scan(&sym, &at); err != nil {
			rows.Close()
			return err
		}
		added[sym] = at
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM watchlist`); err != nil {
		return err
	}
	now := time.Now().Unix()
	for i, sym := range symbols {
		at, ok := added[sym]
		if !ok {
			at = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO watchlist (symbol, position, added_at) VALUES (?,?,?)`, sym, i, at); err != nil {
			return fmt.Errorf("insert %s: %w", sym, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('watchlist_saved', '1')
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecordQuotes(ctx context.Context, snaps []model.QuoteSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quote_snapshots
		(timestamp, symbol, price, change, change_percent)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range snaps {
		if _, err := stmt.ExecContext(ctx, q.ObservedAt.Unix(), q.Symbol, q.Price, q.Change, q.ChangePercent); err != nil {
			return fmt.Errorf("insert quote %s: %w", q.Symbol, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecentQuotes(ctx context.Context, symbol string, limit int) ([]model.QuoteSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, symbol, price, change, change_percent
		FROM quote_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	out := []model.QuoteSnapshot{}
	for rows.Next() {
		var ts int64
		var q model.QuoteSnapshot
		if err := rows.Scan(&ts, &q.Symbol, &q.Price, &q.Change, &q.ChangePercent); err != nil {
			return nil, err
		}
		q.ObservedAt = time.Unix(ts, 0)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
