package presets

import (
	"database/sql"
	"fmt"
	"time"
)

// #region types

// Preset is a stored named parameter set for an estimation run.
type Preset struct {
	ID         int
	Name       string
	Alpha      float64
	Beta       float64
	Successes  int
	Trials     int
	Sampler    string
	Iterations int
	BurnIn     int
	Walk       float64
	Seed       uint64
	CreatedAt  time.Time
}

// #endregion types

// #region store

// PresetStore manages named estimation presets in SQLite.
type PresetStore struct {
	db *sql.DB
}

// NewPresetStore creates the presets table if needed and returns a store.
func NewPresetStore(db *sql.DB) (*PresetStore, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS presets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		alpha REAL NOT NULL,
		beta REAL NOT NULL,
		successes INTEGER NOT NULL,
		trials INTEGER NOT NULL,
		sampler TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		burn_in INTEGER NOT NULL,
		walk REAL NOT NULL,
		seed INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create presets table: %w", err)
	}
	return &PresetStore{db: db}, nil
}

// Add stores a new preset. Skips duplicates (case-insensitive name).
func (s *PresetStore) Add(p Preset) error {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM presets WHERE LOWER(name) = LOWER(?)", p.Name).Scan(&count)
	if err != nil {
		return fmt.Errorf("check duplicate preset: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err = s.db.Exec(
		`INSERT INTO presets (name, alpha, beta, successes, trials, sampler, iterations, burn_in, walk, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Alpha, p.Beta, p.Successes, p.Trials,
		p.Sampler, p.Iterations, p.BurnIn, p.Walk, int64(p.Seed), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert preset: %w", err)
	}
	return nil
}

// Get looks up a preset by name (case-insensitive).
func (s *PresetStore) Get(name string) (Preset, error) {
	var p Preset
	var ts string
	var seed int64
	err := s.db.QueryRow(
		`SELECT id, name, alpha, beta, successes, trials, sampler, iterations, burn_in, walk, seed, created_at
		 FROM presets WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&p.ID, &p.Name, &p.Alpha, &p.Beta, &p.Successes, &p.Trials,
		&p.Sampler, &p.Iterations, &p.BurnIn, &p.Walk, &seed, &ts)
	if err != nil {
		return Preset{}, fmt.Errorf("get preset %q: %w", name, err)
	}
	p.Seed = uint64(seed)
	p.CreatedAt, _ = time.Parse(time.RFC3339, ts)
	return p, nil
}

// List returns all stored presets.
func (s *PresetStore) List() ([]Preset, error) {
	rows, err := s.db.Query(
		`SELECT id, name, alpha, beta, successes, trials, sampler, iterations, burn_in, walk, seed, created_at
		 FROM presets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		var p Preset
		var ts string
		var seed int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Alpha, &p.Beta, &p.Successes, &p.Trials,
			&p.Sampler, &p.Iterations, &p.BurnIn, &p.Walk, &seed, &ts); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		p.Seed = uint64(seed)
		p.CreatedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, p)
	}
	return out, rows.Err()
}

// #endregion store

// #region defaults

// SeedDefaults installs the built-in calibration preset if absent.
func (s *PresetStore) SeedDefaults() error {
	return s.Add(Preset{
		Name:       "biased-coin",
		Alpha:      2,
		Beta:       3,
		Successes:  7,
		Trials:     10,
		Sampler:    "auto",
		Iterations: 10000,
		BurnIn:     1000,
		Walk:       0.25,
		Seed:       1,
	})
}

// #endregion defaults
