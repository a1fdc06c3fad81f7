package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// loadAllJSONL reads each table's JSONL file from dataDir and inserts the
// records into SQLite inside one transaction: either every table loads or
// the database stays empty. Lines that do not decode or validate, and
// records whose ID or name is already taken, are skipped and logged.
func loadAllJSONL(db *sql.DB, dataDir string, logger *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, k := range kinds {
		records, err := readJSONL(filepath.Join(dataDir, k.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", k.file, err)
		}
		loaded, err := insertRecords(tx, k, records, logger)
		if err != nil {
			return fmt.Errorf("loading %s into %s: %w", k.file, k.table, err)
		}
		logger.Debug("loaded jsonl",
			slog.String("file", k.file),
			slog.Int("records", loaded),
			slog.Int("skipped", len(records)-loaded))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts decoded JSONL records into one table and returns how
// many were inserted. Unknown JSON fields are ignored by the decoder.
func insertRecords(tx *sql.Tx, k kind, records []json.RawMessage, logger *slog.Logger) (int, error) {
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (%s, name, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		k.table, k.idColumn))
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", k.table, err)
	}
	defer stmt.Close()

	loaded := 0
	for _, raw := range records {
		e, err := k.decode(raw)
		if err != nil || e.id() == "" || e.validate() != nil {
			logger.Warn("skipping invalid record", slog.String("table", k.table))
			continue
		}
		res, err := stmt.Exec(e.id(), e.name(), string(raw), formatTime(e.created()), formatTime(e.updated()))
		if err != nil {
			return loaded, fmt.Errorf("inserting %s: %w", e.id(), err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			logger.Warn("skipping duplicate record",
				slog.String("table", k.table),
				slog.String("id", e.id()),
				slog.String("name", e.name()))
			continue
		}
		loaded++
	}
	return loaded, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
