package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists chart snapshots to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read
	// while the service writes).
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
		`CREATE TABLE IF NOT EXISTS chart_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			asset          TEXT NOT NULL,
			class          TEXT,
			source         TEXT,
			points         INTEGER,
			latest_price   REAL,
			change         REAL,
			change_percent REAL,
			direction      TEXT,
			window_high    REAL,
			window_low     REAL,
			window_average REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON chart_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_asset ON chart_snapshots(asset)`,

		`CREATE TABLE IF NOT EXISTS fetch_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			asset       TEXT NOT NULL,
			class       TEXT,
			source      TEXT,
			points      INTEGER,
			duration_ms INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := snap.Data
	st := d.Stats
	_, err := r.db.Exec(`INSERT INTO chart_snapshots
		(timestamp, asset, class, source, points,
		 latest_price, change, change_percent, direction,
		 window_high, window_low, window_average)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), d.Asset, string(d.Class), string(d.Source), len(d.Series),
		st.LatestPrice, st.Change, st.ChangePercent, string(st.Direction),
		st.WindowHigh, st.WindowLow, st.WindowAverage,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetch(evt *FetchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_events
		(timestamp, asset, class, source, points, duration_ms, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Asset, string(evt.Class), evt.Source,
		evt.Points, evt.DurationMs, evt.Err,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
