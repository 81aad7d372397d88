package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	created_at      TEXT NOT NULL,
	prior_alpha     REAL NOT NULL,
	prior_beta      REAL NOT NULL,
	successes       INTEGER NOT NULL,
	trials          INTEGER NOT NULL,
	sampler         TEXT NOT NULL,
	iterations      INTEGER NOT NULL,
	burn_in         INTEGER NOT NULL,
	seed            INTEGER NOT NULL,
	walk            REAL NOT NULL,
	grid_size       INTEGER NOT NULL,
	posterior_alpha REAL NOT NULL,
	posterior_beta  REAL NOT NULL,
	analytic_mean   REAL NOT NULL,
	sample_mean     REAL NOT NULL,
	abs_error       REAL NOT NULL,
	samples         BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS run_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	stage        TEXT NOT NULL,
	decision     TEXT NOT NULL,
	reason       TEXT,
	metrics_json TEXT,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`
// #endregion schema

// #region store-struct
// Store manages persisted estimation runs in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging, presets).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region save-run
// SaveRun inserts a completed run.
func (s *Store) SaveRun(rec RunRecord) error {
	if rec.RunID == "" {
		return fmt.Errorf("save run: empty run id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, created_at, prior_alpha, prior_beta, successes, trials,
		                   sampler, iterations, burn_in, seed, walk, grid_size,
		                   posterior_alpha, posterior_beta, analytic_mean, sample_mean, abs_error, samples)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.CreatedAt.Format(time.RFC3339Nano),
		rec.PriorAlpha, rec.PriorBeta, rec.Successes, rec.Trials,
		rec.Sampler, rec.Iterations, rec.BurnIn, int64(rec.Seed), rec.Walk, rec.GridSize,
		rec.PosteriorAlpha, rec.PosteriorBeta, rec.AnalyticMean, rec.SampleMean, rec.AbsError,
		encodeSamples(rec.Samples),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}
// #endregion save-run

// #region get-run
// GetRun retrieves a specific run by ID.
func (s *Store) GetRun(id string) (RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, created_at, prior_alpha, prior_beta, successes, trials,
		        sampler, iterations, burn_in, seed, walk, grid_size,
		        posterior_alpha, posterior_beta, analytic_mean, sample_mean, abs_error, samples
		 FROM runs WHERE run_id = ?`, id,
	)
	rec, err := scanRun(row)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return rec, nil
}
// #endregion get-run

// #region list-runs
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, created_at, prior_alpha, prior_beta, successes, trials,
		        sampler, iterations, burn_in, seed, walk, grid_size,
		        posterior_alpha, posterior_beta, analytic_mean, sample_mean, abs_error, samples
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
// #endregion list-runs

// #region list-runs-with-log
// ListRunsWithLog returns the most recent runs joined with their gate
// decision rows, newest first.
func (s *Store) ListRunsWithLog(limit int) ([]RunWithLog, error) {
	rows, err := s.db.Query(
		`SELECT r.run_id, r.created_at, r.prior_alpha, r.prior_beta, r.successes, r.trials,
		        r.sampler, r.iterations, r.burn_in, r.seed, r.walk, r.grid_size,
		        r.posterior_alpha, r.posterior_beta, r.analytic_mean, r.sample_mean, r.abs_error, r.samples,
		        l.decision, l.reason, l.metrics_json
		 FROM runs r
		 LEFT JOIN run_log l ON l.run_id = r.run_id AND l.stage = 'gate'
		 ORDER BY r.created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs with log: %w", err)
	}
	defer rows.Close()

	var out []RunWithLog
	for rows.Next() {
		var rec RunRecord
		var createdStr string
		var blob []byte
		var seed int64
		var decision, reason, metrics sql.NullString

		err := rows.Scan(
			&rec.RunID, &createdStr, &rec.PriorAlpha, &rec.PriorBeta, &rec.Successes, &rec.Trials,
			&rec.Sampler, &rec.Iterations, &rec.BurnIn, &seed, &rec.Walk, &rec.GridSize,
			&rec.PosteriorAlpha, &rec.PosteriorBeta, &rec.AnalyticMean, &rec.SampleMean, &rec.AbsError, &blob,
			&decision, &reason, &metrics,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run with log: %w", err)
		}
		rec.Seed = uint64(seed)
		rec.Samples = decodeSamples(blob)
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

		out = append(out, RunWithLog{
			RunRecord:   rec,
			Decision:    decision.String,
			Reason:      reason.String,
			MetricsJSON: metrics.String,
		})
	}
	return out, rows.Err()
}
// #endregion list-runs-with-log

// #region scan
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var createdStr string
	var blob []byte
	var seed int64

	err := row.Scan(
		&rec.RunID, &createdStr, &rec.PriorAlpha, &rec.PriorBeta, &rec.Successes, &rec.Trials,
		&rec.Sampler, &rec.Iterations, &rec.BurnIn, &seed, &rec.Walk, &rec.GridSize,
		&rec.PosteriorAlpha, &rec.PosteriorBeta, &rec.AnalyticMean, &rec.SampleMean, &rec.AbsError, &blob,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Seed = uint64(seed)
	rec.Samples = decodeSamples(blob)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}
// #endregion scan

// #region blob-codec
// encodeSamples packs draws as little-endian float64s.
func encodeSamples(samples []float64) []byte {
	buf := make([]byte, 8*len(samples))
	for i, x := range samples {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(x))
	}
	return buf
}

// decodeSamples unpacks a little-endian float64 blob.
func decodeSamples(buf []byte) []float64 {
	n := len(buf) / 8
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return samples
}
// #endregion blob-codec
