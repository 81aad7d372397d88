package store

import "time"

// #region run-record
// RunRecord is one persisted estimation run: inputs, derived posterior,
// estimates, and the retained draws.
type RunRecord struct {
	RunID     string
	CreatedAt time.Time

	// Inputs
	PriorAlpha float64
	PriorBeta  float64
	Successes  int
	Trials     int

	// Sampler configuration
	Sampler    string
	Iterations int
	BurnIn     int
	Seed       uint64
	Walk       float64
	GridSize   int

	// Derived quantities
	PosteriorAlpha float64
	PosteriorBeta  float64
	AnalyticMean   float64
	SampleMean     float64
	AbsError       float64

	// Retained draws
	Samples []float64
}

// #endregion run-record

// #region run-with-log
// RunWithLog pairs a run with its gate decision row fields.
type RunWithLog struct {
	RunRecord
	Decision    string
	Reason      string
	MetricsJSON string
}

// #endregion run-with-log
