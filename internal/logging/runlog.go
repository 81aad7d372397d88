package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// #region log-decision
// LogDecision writes a decision entry to the run_log table.
func LogDecision(db *sql.DB, entry RunLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_log (run_id, stage, decision, reason, metrics_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Stage,
		entry.Decision,
		nullIfEmpty(entry.Reason),
		nullIfEmpty(entry.MetricsJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}
// #endregion log-decision

// #region estimate-record-codec
// ParseEstimateRecord decodes an EstimateRecord from a metrics column value.
// Returns nil when the value is empty or not in EstimateRecord format.
func ParseEstimateRecord(metricsJSON string) *EstimateRecord {
	if metricsJSON == "" {
		return nil
	}
	var er EstimateRecord
	if err := json.Unmarshal([]byte(metricsJSON), &er); err != nil || er.RunID == "" {
		return nil
	}
	return &er
}

// Encode serializes the record for storage in a metrics column.
func (er EstimateRecord) Encode() (string, error) {
	data, err := json.Marshal(er)
	if err != nil {
		return "", fmt.Errorf("encode estimate record: %w", err)
	}
	return string(data), nil
}
// #endregion estimate-record-codec

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
