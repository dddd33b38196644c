// Package snapshot provides a one-way SQLite diagnostic exporter for the
// brain simulator: one row per logged tick holding the spike count and the
// full hormone reading. It is write-only — there is no loader — so it
// never becomes a resume or checkpointing mechanism, only an offline
// analysis side-channel.
package snapshot

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Exporter owns a single SQLite connection used to append tick snapshots.
type Exporter struct {
	db *sql.DB
}

// NewExporter opens (recreating) a SQLite database at path and creates the
// snapshot table if it does not already exist.
func NewExporter(path string) (*Exporter, error) {
	_ = os.Remove(path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: ping %s: %w", path, err)
	}

	e := &Exporter{db: db}
	if err := e.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return e, nil
}

func (e *Exporter) createTable() error {
	schema := `
	CREATE TABLE IF NOT EXISTS TickSnapshots (
		SnapshotID INTEGER PRIMARY KEY AUTOINCREMENT,
		Tick INTEGER NOT NULL,
		Timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		SpikeCount INTEGER NOT NULL,
		Dopamine REAL, Serotonin REAL, Cortisol REAL, Adrenaline REAL,
		Oxytocin REAL, Melatonin REAL, Noradrenaline REAL, Endorphin REAL,
		Acetylcholine REAL, Testosterone REAL
	);`
	if _, err := e.db.Exec(schema); err != nil {
		return fmt.Errorf("snapshot: create table: %w", err)
	}
	return nil
}

// Record appends one row for the given tick. It never returns a caller-fatal
// error class — the scheduler logs failures and continues, matching the
// rest of the journal's "diagnostics never stop the loop" policy.
func (e *Exporter) Record(tick int64, spikeCount int, hormones map[string]float64) error {
	_, err := e.db.Exec(`
		INSERT INTO TickSnapshots
			(Tick, SpikeCount, Dopamine, Serotonin, Cortisol, Adrenaline,
			 Oxytocin, Melatonin, Noradrenaline, Endorphin, Acetylcholine, Testosterone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tick, spikeCount,
		hormones["dopamine"], hormones["serotonin"], hormones["cortisol"], hormones["adrenaline"],
		hormones["oxytocin"], hormones["melatonin"], hormones["noradrenaline"], hormones["endorphin"],
		hormones["acetylcholine"], hormones["testosterone"],
	)
	if err != nil {
		return fmt.Errorf("snapshot: insert tick %d: %w", tick, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (e *Exporter) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}
