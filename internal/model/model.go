package model

import (
	"fmt"
	"strconv"
	"strings"
)

// #region prior-validate

// Validate checks that both shape parameters are positive.
func (p Prior) Validate() error {
	if p.Alpha <= 0 || p.Beta <= 0 {
		return fmt.Errorf("%w: alpha=%g beta=%g", ErrInvalidPrior, p.Alpha, p.Beta)
	}
	return nil
}

// #endregion prior-validate

// #region dataset-constructors

// NewDataset builds a dataset from an outcome slice. Each element must be 0 or 1.
func NewDataset(outcomes []int) (Dataset, error) {
	for i, v := range outcomes {
		if v != 0 && v != 1 {
			return Dataset{}, fmt.Errorf("%w: outcome %d at index %d", ErrInvalidData, v, i)
		}
	}
	copied := make([]int, len(outcomes))
	copy(copied, outcomes)
	return Dataset{outcomes: copied}, nil
}

// NewDatasetFromCounts builds a dataset of the given length with the successes
// placed first. Order does not affect the conjugate update.
func NewDatasetFromCounts(successes, trials int) (Dataset, error) {
	if trials < 0 || successes < 0 || successes > trials {
		return Dataset{}, fmt.Errorf("%w: %d successes of %d trials", ErrInvalidData, successes, trials)
	}
	outcomes := make([]int, trials)
	for i := 0; i < successes; i++ {
		outcomes[i] = 1
	}
	return Dataset{outcomes: outcomes}, nil
}

// ParseOutcomes parses a comma-separated outcome string such as "1,1,0,1".
func ParseOutcomes(s string) (Dataset, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dataset{}, nil
	}
	parts := strings.Split(s, ",")
	outcomes := make([]int, 0, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: element %d %q", ErrInvalidData, i, part)
		}
		outcomes = append(outcomes, v)
	}
	return NewDataset(outcomes)
}

// DefaultDataset returns the 7-of-10 calibration sequence.
func DefaultDataset() Dataset {
	d, _ := NewDatasetFromCounts(7, 10)
	return d
}

// #endregion dataset-constructors

// #region dataset-accessors

// Len returns the number of observed outcomes.
func (d Dataset) Len() int { return len(d.outcomes) }

// Successes counts the 1 outcomes.
func (d Dataset) Successes() int {
	k := 0
	for _, v := range d.outcomes {
		k += v
	}
	return k
}

// Failures counts the 0 outcomes.
func (d Dataset) Failures() int { return d.Len() - d.Successes() }

// Outcomes returns a copy of the outcome sequence.
func (d Dataset) Outcomes() []int {
	out := make([]int, len(d.outcomes))
	copy(out, d.outcomes)
	return out
}

// Validate re-checks the outcome domain. Datasets built through the
// constructors are always valid; this guards hand-built values.
func (d Dataset) Validate() error {
	for i, v := range d.outcomes {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: outcome %d at index %d", ErrInvalidData, v, i)
		}
	}
	return nil
}

// #endregion dataset-accessors

// #region update

// Update applies the Beta-Bernoulli conjugate rule: the posterior is
// Beta(alpha + k, beta + n - k) for k successes in n trials.
func Update(p Prior, d Dataset) (Posterior, error) {
	if err := p.Validate(); err != nil {
		return Posterior{}, err
	}
	if err := d.Validate(); err != nil {
		return Posterior{}, err
	}
	k := d.Successes()
	return Posterior{
		Alpha: p.Alpha + float64(k),
		Beta:  p.Beta + float64(d.Len()-k),
	}, nil
}

// #endregion update

// #region posterior-moments

// Mean returns the analytic posterior expectation alpha / (alpha + beta).
func (q Posterior) Mean() float64 {
	return q.Alpha / (q.Alpha + q.Beta)
}

// Variance returns the analytic posterior variance.
func (q Posterior) Variance() float64 {
	s := q.Alpha + q.Beta
	return q.Alpha * q.Beta / (s * s * (s + 1))
}

// Mode returns the posterior mode. The second return is false when the mode
// is undefined (alpha <= 1 or beta <= 1 puts mass against a boundary).
func (q Posterior) Mode() (float64, bool) {
	if q.Alpha <= 1 || q.Beta <= 1 {
		return 0, false
	}
	return (q.Alpha - 1) / (q.Alpha + q.Beta - 2), true
}

// Validate checks that both posterior shape parameters are positive.
func (q Posterior) Validate() error {
	if q.Alpha <= 0 || q.Beta <= 0 {
		return fmt.Errorf("%w: alpha=%g beta=%g", ErrInvalidPrior, q.Alpha, q.Beta)
	}
	return nil
}

// #endregion posterior-moments
