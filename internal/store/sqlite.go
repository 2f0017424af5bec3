// Package store persists decisions and trade history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chartpilot/internal/models"
)

// SQLiteStore persists decisions and trades in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates a SQLite-backed store at the given path.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		currency_pair TEXT NOT NULL,
		action TEXT NOT NULL,
		direction TEXT NOT NULL,
		confidence REAL NOT NULL,
		stop_loss_pips INTEGER NOT NULL,
		take_profit_pips INTEGER NOT NULL,
		position_size REAL NOT NULL,
		strategies TEXT NOT NULL,
		reasoning TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_time ON decisions(timestamp);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		currency_pair TEXT NOT NULL,
		action TEXT NOT NULL,
		direction TEXT NOT NULL,
		reward_pips REAL NOT NULL,
		status TEXT NOT NULL,
		position_size REAL NOT NULL,
		strategies TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDecision appends a decision to the log.
func (s *SQLiteStore) SaveDecision(ctx context.Context, d *models.Decision) error {
	strategies, err := json.Marshal(d.StrategiesTriggered)
	if err != nil {
		return fmt.Errorf("failed to encode strategies: %w", err)
	}
	reasoning, err := json.Marshal(d.Reasoning)
	if err != nil {
		return fmt.Errorf("failed to encode reasoning: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decisions (timestamp, currency_pair, action, direction, confidence,
			stop_loss_pips, take_profit_pips, position_size, strategies, reasoning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Timestamp, d.CurrencyPair, d.Action, d.Direction, d.Confidence,
		d.StopLossPips, d.TakeProfitPips, d.PositionSize, string(strategies), string(reasoning))
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

// SaveTrade appends a trade record.
func (s *SQLiteStore) SaveTrade(ctx context.Context, t *models.TradeRecord) error {
	strategies, err := json.Marshal(t.StrategiesTriggered)
	if err != nil {
		return fmt.Errorf("failed to encode strategies: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trades (timestamp, currency_pair, action, direction, reward_pips,
			status, position_size, strategies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Timestamp, t.CurrencyPair, t.Action, t.Direction, t.RewardPips,
		t.Status, t.PositionSize, string(strategies))
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// RecentTrades returns up to limit most recent trades, oldest first.
func (s *SQLiteStore) RecentTrades(ctx context.Context, limit int) ([]models.TradeRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, currency_pair, action, direction, reward_pips, status,
			position_size, strategies
		FROM trades ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var t models.TradeRecord
		var strategies string
		if err := rows.Scan(&t.Timestamp, &t.CurrencyPair, &t.Action, &t.Direction,
			&t.RewardPips, &t.Status, &t.PositionSize, &strategies); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		if err := json.Unmarshal([]byte(strategies), &t.StrategiesTriggered); err != nil {
			t.StrategiesTriggered = nil
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first, the order the journal expects.
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}
	return trades, nil
}

// CloseLatestOpen settles the most recent open trade with its realized
// pips. It reports whether an open trade was found.
func (s *SQLiteStore) CloseLatestOpen(ctx context.Context, rewardPips float64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET status = ?, reward_pips = ?
		WHERE id = (SELECT id FROM trades WHERE status = ? ORDER BY timestamp DESC, id DESC LIMIT 1)`,
		models.TradeClosed, rewardPips, models.TradeOpen)
	if err != nil {
		return false, fmt.Errorf("failed to settle trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
