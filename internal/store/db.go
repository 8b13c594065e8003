package store

import (
	"database/sql"
	"encoding/json"
	"ocr-batch-pipeline/internal/model"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the run-tracking database and creates the schema. The store
// is optional: every save function is a no-op until InitDB has been called,
// so CLI runs without a database path skip persistence entirely.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		summary TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		item_path TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	batchTable := `
	CREATE TABLE IF NOT EXISTS batch_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		batch_number INTEGER,
		batch_size INTEGER,
		success_rate REAL,
		batch_delay_ms INTEGER,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}
	if _, err := db.Exec(batchTable); err != nil {
		return err
	}

	return nil
}

// SaveRun stores a new OCR run
func SaveRun(runID string, spec model.RunSpec) error {
	if db == nil {
		return nil
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates run status
func UpdateRunStatus(runID string, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunSummary attaches the final summary to a run
func SaveRunSummary(runID string, summary model.RunSummary) error {
	if db == nil {
		return nil
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`UPDATE runs SET summary = ?, updated_at = ? WHERE id = ?`, summaryJSON, now, runID)
	return err
}

// SaveRunError records a terminal item failure for a run
func SaveRunError(runID string, itemPath string, err error) error {
	if db == nil || err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, item_path, error_message, created_at) VALUES (?, ?, ?, ?)`,
		runID, itemPath, err.Error(), now)
	return e
}

// SaveBatchOutcome records one completed batch for a run
func SaveBatchOutcome(runID string, outcome model.BatchOutcome) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO batch_history (run_id, batch_number, batch_size, success_rate, batch_delay_ms, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, outcome.BatchNumber, outcome.BatchSize, outcome.SuccessRate, outcome.BatchDelay.Milliseconds(), now)
	return err
}

// ListRuns returns all runs with basic info
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, nil
}

// GetRun fetches full run spec, status and summary
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON, status string
	var summaryJSON sql.NullString
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, summary, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &summaryJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.RunSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		var summary model.RunSummary
		if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err != nil {
			return nil, err
		}
		result["summary"] = summary
	}
	return result, nil
}

// GetRunErrors lists recorded item failures for a run
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT item_path, error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var itemPath, message string
		var createdAt time.Time
		if err := rows.Scan(&itemPath, &message, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"itemPath":  itemPath,
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errors, nil
}

// GetBatchHistory lists recorded batch outcomes for a run
func GetBatchHistory(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT batch_number, batch_size, success_rate, batch_delay_ms, created_at FROM batch_history WHERE run_id = ? ORDER BY batch_number`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []map[string]interface{}
	for rows.Next() {
		var batchNumber, batchSize int
		var successRate float64
		var delayMs int64
		var createdAt time.Time
		if err := rows.Scan(&batchNumber, &batchSize, &successRate, &delayMs, &createdAt); err != nil {
			return nil, err
		}
		batches = append(batches, map[string]interface{}{
			"batchNumber":  batchNumber,
			"batchSize":    batchSize,
			"successRate":  successRate,
			"batchDelayMs": delayMs,
			"createdAt":    createdAt,
		})
	}
	return batches, nil
}
