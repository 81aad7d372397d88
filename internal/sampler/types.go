package sampler

import "errors"

// #region ids

// ID selects a posterior sampling implementation.
type ID string

const (
	// Auto lets the pipeline strategy pick an implementation.
	Auto ID = "auto"
	// Conjugate draws i.i.d. from the analytic Beta posterior.
	Conjugate ID = "conjugate"
	// MCMC runs a random-walk Metropolis-Hastings chain against the posterior.
	MCMC ID = "mcmc"
)

// #endregion ids

// #region errors

// ErrBadConfig reports an unusable sampler configuration.
var ErrBadConfig = errors.New("invalid sampler config")

// ErrUnknownSampler reports an unrecognized sampler ID.
var ErrUnknownSampler = errors.New("unknown sampler")

// #endregion errors

// #region config

// Config holds sampling parameters shared by all implementations.
type Config struct {
	Iterations int     // retained draws returned to the caller
	BurnIn     int     // warm-up draws discarded inside the MCMC chain
	Seed       uint64  // PRNG seed; same seed yields the same draws
	Walk       float64 // Gaussian proposal sigma for the MCMC chain
}

// DefaultConfig returns the calibration defaults.
func DefaultConfig() Config {
	return Config{
		Iterations: 10000,
		BurnIn:     1000,
		Seed:       1,
		Walk:       0.25,
	}
}

// #endregion config
