package simulation

import (
	"database/sql"
	"fmt"

	"recsim/engine"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
)

// LogDB stores finished runs: every interaction log entry row-by-row, and
// each policy's metrics as a msgpack blob. Models are never persisted.
type LogDB struct {
	db *sql.DB
}

// OpenLogDB opens (creating if needed) a run database at filename.
func OpenLogDB(filename string) (*LogDB, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			infer_user_count INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS interaction_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			policy TEXT NOT NULL,
			user_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			purchased BOOLEAN NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create interaction_logs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS policy_metrics (
			run_id INTEGER NOT NULL,
			policy TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (run_id, policy),
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create policy_metrics table: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &LogDB{db: db}, nil
}

// Close closes the underlying database.
func (d *LogDB) Close() error {
	return d.db.Close()
}

// StoreRun writes one run's per-policy logs and metrics in a single
// transaction and returns the new run ID.
func (d *LogDB) StoreRun(md *ScenarioMetadata, results []InferenceResult) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(
		"INSERT INTO runs (name, seed, threshold, infer_user_count) VALUES (?, ?, ?, ?)",
		md.UniqueName, md.Seed, md.PurchaseThreshold, md.InferUserCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	logStmt, err := tx.Prepare(
		"INSERT INTO interaction_logs (run_id, policy, user_id, item_id, position, purchased) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare log insert: %w", err)
	}
	defer logStmt.Close()

	for _, r := range results {
		for _, entry := range r.Logs {
			if _, err = logStmt.Exec(
				runID, r.Policy, entry.UserID, entry.ItemID, entry.Position, entry.Purchased,
			); err != nil {
				return 0, fmt.Errorf("failed to insert log entry: %w", err)
			}
		}

		var data []byte
		data, err = msgpack.Marshal(r.Metrics)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal metrics: %w", err)
		}
		if _, err = tx.Exec(
			"INSERT INTO policy_metrics (run_id, policy, data) VALUES (?, ?, ?)",
			runID, r.Policy, data,
		); err != nil {
			return 0, fmt.Errorf("failed to insert metrics: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetLogs loads one policy's log entries for a run, in insertion order.
func (d *LogDB) GetLogs(runID int64, policyName string) ([]engine.LogEntry, error) {
	rows, err := d.db.Query(`
		SELECT user_id, item_id, position, purchased FROM interaction_logs
		WHERE run_id = ? AND policy = ? ORDER BY id ASC
	`, runID, policyName)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []engine.LogEntry
	for rows.Next() {
		var entry engine.LogEntry
		if err := rows.Scan(&entry.UserID, &entry.ItemID, &entry.Position, &entry.Purchased); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// GetMetrics loads one policy's stored metrics for a run.
func (d *LogDB) GetMetrics(runID int64, policyName string) (*PolicyMetrics, error) {
	var data []byte
	err := d.db.QueryRow(
		"SELECT data FROM policy_metrics WHERE run_id = ? AND policy = ?",
		runID, policyName,
	).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}

	var m PolicyMetrics
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	return &m, nil
}
