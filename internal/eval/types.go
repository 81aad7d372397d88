package eval

// #region eval-config
// EvalConfig holds thresholds for post-run validation.
type EvalConfig struct {
	MaxAbsError   float64 // reject if the Monte-Carlo mean deviates further from the analytic mean
	MinSamples    int     // reject if fewer retained draws
	IntegralSlack float64 // integral tolerance as a multiple of the grid step
}

// DefaultEvalConfig returns thresholds matched to the 10k-draw calibration run.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MaxAbsError:   0.02,
		MinSamples:    100,
		IntegralSlack: 1.0,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of post-run validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
