package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/traits/pkg/types"
)

// Table implements types.Table for one record kind.
type Table struct {
	backend *Backend
	kind    kind
}

// Get retrieves a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *Table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	var body string
	err := b.db.QueryRow(
		fmt.Sprintf("SELECT body FROM %s WHERE %s = ?", t.kind.table, t.kind.idColumn), id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s %s: %w", t.kind.table, id, err)
	}
	e, err := t.kind.decode([]byte(body))
	if err != nil {
		return nil, err
	}
	return e.value(), nil
}

// Set creates or updates a record. If id is empty a UUID v7 is generated.
// The record's ID and timestamps are filled in; CreatedAt is kept from the
// stored record on update. Returns ErrInvalidData for a record of the wrong
// type and ErrDuplicateName when another record already uses the name.
func (t *Table) Set(id string, data any) (string, error) {
	e, ok := t.kind.wrap(data)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := e.validate(); err != nil {
		return "", err
	}

	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return "", types.ErrCatalogDetached
	}

	if id == "" {
		id = generateUUID()
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var other string
	err = tx.QueryRow(
		fmt.Sprintf("SELECT %s FROM %s WHERE name = ? AND %s != ?", t.kind.idColumn, t.kind.table, t.kind.idColumn),
		e.name(), id,
	).Scan(&other)
	switch {
	case err == nil:
		return "", fmt.Errorf("%s %q: %w", t.kind.table, e.name(), types.ErrDuplicateName)
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("checking name: %w", err)
	}

	now := time.Now().UTC()
	created := now
	var createdAt string
	err = tx.QueryRow(
		fmt.Sprintf("SELECT created_at FROM %s WHERE %s = ?", t.kind.table, t.kind.idColumn), id,
	).Scan(&createdAt)
	switch {
	case err == nil:
		if created, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return "", fmt.Errorf("parsing created_at: %w", err)
		}
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("reading %s %s: %w", t.kind.table, id, err)
	}

	e.setID(id)
	e.stamp(created, now)
	body, err := json.Marshal(e.value())
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", t.kind.table, err)
	}

	_, err = tx.Exec(fmt.Sprintf(
		`INSERT INTO %[1]s (%[2]s, name, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(%[2]s) DO UPDATE SET name = excluded.name, body = excluded.body, updated_at = excluded.updated_at`,
		t.kind.table, t.kind.idColumn),
		id, e.name(), string(body), formatTime(created), formatTime(now))
	if err != nil {
		return "", fmt.Errorf("writing %s %s: %w", t.kind.table, id, err)
	}
	if err := t.persistLocked(tx); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing %s %s: %w", t.kind.table, id, err)
	}

	b.logger.Debug("record saved",
		slog.String("table", t.kind.table),
		slog.String("id", id),
		slog.String("name", e.name()))
	return id, nil
}

// Delete removes a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *Table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrCatalogDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.kind.table, t.kind.idColumn), id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.kind.table, id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.kind.table, id, err)
	} else if n == 0 {
		return types.ErrNotFound
	}
	if err := t.persistLocked(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of %s %s: %w", t.kind.table, id, err)
	}

	b.logger.Debug("record deleted",
		slog.String("table", t.kind.table),
		slog.String("id", id))
	return nil
}

// Fetch returns the records matching filter, ordered by name. The only
// supported key is "name", which must be a string; an empty filter matches
// every record.
func (t *Table) Fetch(filter map[string]any) ([]any, error) {
	query := fmt.Sprintf("SELECT body FROM %s", t.kind.table)
	var args []any
	for key, val := range filter {
		if key != "name" {
			return nil, fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
		name, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: name must be a string", types.ErrInvalidFilter)
		}
		query += " WHERE name = ?"
		args = append(args, name)
	}
	query += " ORDER BY name"

	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrCatalogDetached
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.kind.table, err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.kind.table, err)
		}
		e, err := t.kind.decode([]byte(body))
		if err != nil {
			return nil, err
		}
		results = append(results, e.value())
	}
	return results, rows.Err()
}

// persistLocked rewrites the table's JSONL file from the rows visible to tx,
// oldest record first. The caller must hold the backend write lock and
// commits tx only after persistLocked succeeds.
func (t *Table) persistLocked(tx *sql.Tx) error {
	b := t.backend
	rows, err := tx.Query(fmt.Sprintf(
		"SELECT body FROM %s ORDER BY created_at, %s", t.kind.table, t.kind.idColumn))
	if err != nil {
		return fmt.Errorf("reading %s for persist: %w", t.kind.table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning %s for persist: %w", t.kind.table, err)
		}
		records = append(records, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, t.kind.file), records)
}
