package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			end_date   TEXT NOT NULL,
			requested  INTEGER,
			skipped    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS run_metrics (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            INTEGER NOT NULL REFERENCES runs(id),
			symbol            TEXT NOT NULL,
			total_return      REAL,
			annualized_return REAL,
			volatility        REAL,
			max_drawdown      REAL,
			sharpe_ratio      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_metrics_run ON run_metrics(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs (timestamp, start_date, end_date, requested, skipped)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(),
		rec.Start.Format("2006-01-02"), rec.End.Format("2006-01-02"),
		rec.Requested, rec.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, m := range rec.Metrics {
		if _, err := tx.Exec(`INSERT INTO run_metrics
			(run_id, symbol, total_return, annualized_return, volatility, max_drawdown, sharpe_ratio)
			VALUES (?,?,?,?,?,?,?)`,
			runID, m.Symbol, m.TotalReturn, m.AnnualizedReturn,
			m.Volatility, m.MaxDrawdown, m.SharpeRatio,
		); err != nil {
			return fmt.Errorf("insert metrics %s: %w", m.Symbol, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
