package summary

import "errors"

// ErrNoSamples reports an empty sample set passed to the reporting step.
var ErrNoSamples = errors.New("no samples: cannot summarize an empty draw set")

// #region summary

// Summary holds derived statistics for a retained draw set, compared
// against the analytic posterior.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64

	// Central 90% credible interval from empirical quantiles.
	CredibleLow  float64
	CredibleHigh float64

	// AnalyticMean is alpha'/(alpha'+beta'); AbsError is the Monte-Carlo
	// estimate's absolute deviation from it.
	AnalyticMean float64
	AbsError     float64
}

// #endregion summary
