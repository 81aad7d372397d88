package logging

import "time"

// #region run-log-entry
// RunLogEntry is one structured decision row for an estimation run.
type RunLogEntry struct {
	RunID       string
	Stage       string // "gate" | "eval" | "persist"
	Decision    string // "commit" | "reject" | "pass" | "fail"
	Reason      string
	MetricsJSON string
	CreatedAt   time.Time
}

// #endregion run-log-entry

// #region estimate-record
// EstimateRecord is the JSON document stored in the gate row's metrics
// column. It carries enough of the request and the estimates to replay the
// run from the log alone.
type EstimateRecord struct {
	RunID string `json:"run_id"`

	PriorAlpha float64 `json:"prior_alpha"`
	PriorBeta  float64 `json:"prior_beta"`
	Successes  int     `json:"successes"`
	Trials     int     `json:"trials"`

	Sampler    string  `json:"sampler"`
	Iterations int     `json:"iterations"`
	BurnIn     int     `json:"burn_in"`
	Seed       uint64  `json:"seed"`
	Walk       float64 `json:"walk"`
	GridSize   int     `json:"grid_size"`

	PosteriorAlpha float64 `json:"posterior_alpha"`
	PosteriorBeta  float64 `json:"posterior_beta"`
	AnalyticMean   float64 `json:"analytic_mean"`
	SampleMean     float64 `json:"sample_mean"`
	AbsError       float64 `json:"abs_error"`

	GateSoftScore float64 `json:"gate_soft_score"`
	EvalPassed    bool    `json:"eval_passed"`
}

// #endregion estimate-record
