// Package store keeps a journal of processing runs and webhook
// deliveries in SQLite. The pipeline itself is stateless; the journal
// exists so reception can see what was posted and when.
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id             TEXT PRIMARY KEY,
		source         TEXT NOT NULL,
		files          TEXT NOT NULL DEFAULT '',
		total_hosts    INTEGER NOT NULL DEFAULT 0,
		total_bookings INTEGER NOT NULL DEFAULT 0,
		total_guests   INTEGER NOT NULL DEFAULT 0,
		error          TEXT DEFAULT '',
		started_at     DATETIME NOT NULL,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	CREATE TABLE IF NOT EXISTS deliveries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id     TEXT NOT NULL,
		host       TEXT NOT NULL,
		status     TEXT NOT NULL,
		error      TEXT DEFAULT '',
		sent_at    DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_deliveries_run ON deliveries(run_id);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Run is one pipeline execution, whether triggered by upload, the
// inbox watcher, or the command line.
type Run struct {
	ID            string
	Source        string // upload, watch or cli
	Files         string // comma separated file names
	TotalHosts    int
	TotalBookings int
	TotalGuests   int
	Error         string
	StartedAt     time.Time
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

func InsertRun(db *sql.DB, run Run) error {
	_, err := db.Exec(
		`INSERT INTO runs (id, source, files, total_hosts, total_bookings, total_guests, error, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Files, run.TotalHosts, run.TotalBookings, run.TotalGuests,
		run.Error, run.StartedAt,
	)
	return err
}

// Delivery records one webhook post attempt for a host.
type Delivery struct {
	RunID  string
	Host   string
	Status string // sent or failed
	Error  string
	SentAt time.Time
}

func InsertDelivery(db *sql.DB, d Delivery) error {
	_, err := db.Exec(
		`INSERT INTO deliveries (run_id, host, status, error, sent_at)
		 VALUES (?, ?, ?, ?, ?)`,
		d.RunID, d.Host, d.Status, d.Error, d.SentAt,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(
		`SELECT id, source, files, total_hosts, total_bookings, total_guests, error, started_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Files, &r.TotalHosts, &r.TotalBookings,
			&r.TotalGuests, &r.Error, &r.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
