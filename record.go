package main

import (
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT,
	topology TEXT,
	cores INTEGER,
	rows INTEGER,
	cols INTEGER,
	concentration INTEGER,
	dirs INTEGER,
	logsize INTEGER,
	clock TEXT,
	output_dir TEXT,
	exit_code INTEGER,
	elapsed_sec REAL,
	sim_ticks INTEGER,
	sim_seconds REAL,
	packets_injected INTEGER,
	packets_received INTEGER,
	avg_packet_latency REAL,
	avg_hops REAL
);`

const insertRun = `
INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// runRecord is one row of the runs table.
type runRecord struct {
	ID        string
	StartedAt time.Time

	Config    *config
	OutputDir string
	ExitCode  int
	Elapsed   time.Duration
	Stats     *netStats
}

// recorder buffers finished runs and writes them into a SQLite database.
// Buffered rows are flushed on exit.
type recorder struct {
	mu      sync.Mutex
	db      *sql.DB
	pending []runRecord
}

func newRecorder(path string) (*recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, err
	}

	r := &recorder{db: db}
	atexit.Register(r.Flush)

	return r, nil
}

// Record buffers one finished run. Safe for concurrent sweep workers.
func (r *recorder) Record(rec runRecord) {
	if rec.ID == "" {
		rec.ID = xid.New().String()
	}

	r.mu.Lock()
	r.pending = append(r.pending, rec)
	r.mu.Unlock()
}

func (r *recorder) Flush() {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		log.Printf("Recording failed: %v", err)
		return
	}

	for _, rec := range pending {
		stats := rec.Stats
		if stats == nil {
			stats = &netStats{}
		}

		c := rec.Config
		_, err := tx.Exec(insertRun,
			rec.ID, rec.StartedAt.Format(time.RFC3339),
			c.Topology.String(), c.Cores, c.Rows, c.Cols,
			c.Concentration, c.Dirs, c.LogSize, c.Clock,
			rec.OutputDir, rec.ExitCode, rec.Elapsed.Seconds(),
			stats.SimTicks, stats.SimSeconds,
			stats.PacketsInjected, stats.PacketsReceived,
			stats.AvgPacketLatency, stats.AvgHops)
		if err != nil {
			tx.Rollback()
			log.Printf("Recording failed: %v", err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Recording failed: %v", err)
	}
}

func (r *recorder) Close() error {
	r.Flush()
	return r.db.Close()
}
