package model

import "errors"

// #region errors

// ErrInvalidPrior reports a Beta prior with a non-positive shape parameter.
var ErrInvalidPrior = errors.New("invalid prior: shape parameters must be positive")

// ErrInvalidData reports an observation sequence containing values outside {0,1}.
var ErrInvalidData = errors.New("invalid data: outcomes must be 0 or 1")

// #endregion errors

// #region prior

// Prior is a Beta(Alpha, Beta) prior over the success probability.
type Prior struct {
	Alpha float64
	Beta  float64
}

// DefaultPrior returns the Beta(2, 3) calibration prior.
func DefaultPrior() Prior {
	return Prior{Alpha: 2, Beta: 3}
}

// #endregion prior

// #region dataset

// Dataset is an immutable ordered sequence of Bernoulli outcomes.
type Dataset struct {
	outcomes []int
}

// #endregion dataset

// #region posterior

// Posterior is the conjugate Beta posterior over the success probability.
type Posterior struct {
	Alpha float64
	Beta  float64
}

// #endregion posterior
