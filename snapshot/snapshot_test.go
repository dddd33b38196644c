package snapshot

import (
	"path/filepath"
	"testing"
)

func TestNewExporterCreatesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	e, err := NewExporter(path)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	defer e.Close()

	var name string
	row := e.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='TickSnapshots'`)
	if err := row.Scan(&name); err != nil {
		t.Fatalf("expected TickSnapshots table to exist: %v", err)
	}
}

func TestRecordInsertsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	e, err := NewExporter(path)
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}
	defer e.Close()

	hormones := map[string]float64{
		"dopamine": 0.5, "serotonin": 0.6, "cortisol": 0.1, "adrenaline": 0.2,
		"oxytocin": 0.05, "melatonin": 0.05, "noradrenaline": 0.4,
		"endorphin": 0.1, "acetylcholine": 0.85, "testosterone": 0.6,
	}
	if err := e.Record(42, 7, hormones); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	var tick int64
	var spikeCount int
	var dopamine float64
	row := e.db.QueryRow(`SELECT Tick, SpikeCount, Dopamine FROM TickSnapshots WHERE Tick = ?`, 42)
	if err := row.Scan(&tick, &spikeCount, &dopamine); err != nil {
		t.Fatalf("expected inserted row to be queryable: %v", err)
	}
	if tick != 42 || spikeCount != 7 || dopamine != 0.5 {
		t.Errorf("unexpected row contents: tick=%d spikeCount=%d dopamine=%f", tick, spikeCount, dopamine)
	}
}
