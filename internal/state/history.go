package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"crewplan/pkg/models"
)

// Record is one stored breakdown plus how it was produced.
type Record struct {
	Breakdown    *models.Breakdown `json:"breakdown"`
	Strategy     string            `json:"strategy,omitempty"`
	UsedFallback bool              `json:"used_fallback"`
}

// SaveBreakdown inserts a breakdown into the history. The breakdown
// must already carry an ID and timestamp.
func (db *DB) SaveBreakdown(rec *Record) error {
	b := rec.Breakdown
	if b == nil || b.ID == "" {
		return fmt.Errorf("save breakdown: record has no ID")
	}

	roles, err := json.Marshal(b.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}

	fallback := 0
	if rec.UsedFallback {
		fallback = 1
	}

	_, err = db.Exec(`
		INSERT INTO breakdowns (id, project_name, roles, total_roles, total_tasks, strategy, used_fallback, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.ProjectName, string(roles), b.Summary.TotalRoles, b.Summary.TotalTasks,
		rec.Strategy, fallback, formatTime(b.GeneratedAt))
	if err != nil {
		return fmt.Errorf("save breakdown: %w", err)
	}
	return nil
}

// GetBreakdown retrieves a breakdown by ID. A missing ID returns
// (nil, nil).
func (db *DB) GetBreakdown(id string) (*Record, error) {
	row := db.QueryRow(`
		SELECT id, project_name, roles, total_roles, total_tasks, strategy, used_fallback, generated_at
		FROM breakdowns WHERE id = ?
	`, id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get breakdown: %w", err)
	}
	return rec, nil
}

// ListBreakdowns lists stored breakdowns, newest first. A limit of 0
// returns everything.
func (db *DB) ListBreakdowns(limit int) ([]Record, error) {
	query := `
		SELECT id, project_name, roles, total_roles, total_tasks, strategy, used_fallback, generated_at
		FROM breakdowns ORDER BY generated_at DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list breakdowns: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteBreakdown deletes a breakdown by ID.
func (db *DB) DeleteBreakdown(id string) error {
	_, err := db.Exec("DELETE FROM breakdowns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete breakdown: %w", err)
	}
	return nil
}

// PurgeOldBreakdowns deletes breakdowns older than the given duration.
// Returns the number of rows deleted.
func (db *DB) PurgeOldBreakdowns(olderThan time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-olderThan))

	result, err := db.Exec("DELETE FROM breakdowns WHERE generated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge old breakdowns: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return count, nil
}

// scanRecord scans one breakdown row via the given Scan function so
// *sql.Row and *sql.Rows share the decoding path.
func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var (
		b           models.Breakdown
		roles       string
		strategy    sql.NullString
		fallback    int
		generatedAt string
	)
	err := scan(&b.ID, &b.ProjectName, &roles, &b.Summary.TotalRoles, &b.Summary.TotalTasks,
		&strategy, &fallback, &generatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(roles), &b.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	b.GeneratedAt, _ = parseTime(generatedAt)

	rec := &Record{Breakdown: &b, UsedFallback: fallback != 0}
	if strategy.Valid {
		rec.Strategy = strategy.String
	}
	return rec, nil
}
