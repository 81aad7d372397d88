package pipeline

import "github.com/danielpatrickdp/posterior-lab/internal/model"

// #region classify

// balancedBand is the success-ratio band treated as balanced data.
const (
	balancedLow  = 0.3
	balancedHigh = 0.7
)

// Classify categorizes a dataset by its success ratio. Degenerate shapes
// (empty, all successes, all failures) pile posterior mass against a
// support boundary and get special sampler handling.
func Classify(d model.Dataset) DataShape {
	n := d.Len()
	if n == 0 {
		return ShapeEmpty
	}
	k := d.Successes()
	switch {
	case k == n:
		return ShapeAllSuccesses
	case k == 0:
		return ShapeAllFailures
	}
	ratio := float64(k) / float64(n)
	if ratio >= balancedLow && ratio <= balancedHigh {
		return ShapeBalanced
	}
	return ShapeSkewed
}

// #endregion classify
