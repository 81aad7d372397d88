package density

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
)

// #region config

// Config holds grid parameters for closed-form evaluation.
type Config struct {
	GridSize int // number of left-rectangle grid points over [0,1)
}

// DefaultConfig returns the standard 1000-point grid.
func DefaultConfig() Config {
	return Config{GridSize: 1000}
}

// #endregion config

// #region curve

// Curve is a normalized closed-form posterior density sampled on an equally
// spaced grid. Thetas[i] = i*Step; Values[i] is the normalized density there.
type Curve struct {
	Thetas []float64
	Values []float64
	Step   float64
}

// #endregion curve

// #region evaluate

// Evaluate computes the normalized posterior density on a left-rectangle
// grid. The unnormalized density theta^(a-1) * (1-theta)^(b-1) is evaluated
// in log space, with theta clamped to [step/2, 1-step/2] so shapes with
// a < 1 or b < 1 stay finite at the support boundaries.
func Evaluate(post model.Posterior, cfg Config) (Curve, error) {
	if err := post.Validate(); err != nil {
		return Curve{}, err
	}
	if cfg.GridSize < 2 {
		return Curve{}, fmt.Errorf("grid size %d too small", cfg.GridSize)
	}

	n := cfg.GridSize
	step := 1.0 / float64(n)
	eps := step / 2

	thetas := make([]float64, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		theta := float64(i) * step
		thetas[i] = theta

		x := theta
		if x < eps {
			x = eps
		}
		if x > 1-eps {
			x = 1 - eps
		}
		logf := (post.Alpha-1)*math.Log(x) + (post.Beta-1)*math.Log(1-x)
		values[i] = math.Exp(logf)
	}

	// Left Riemann normalization
	var sum float64
	for _, v := range values {
		sum += v
	}
	sum *= step
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return Curve{}, fmt.Errorf("degenerate normalizer %g for Beta(%g,%g)", sum, post.Alpha, post.Beta)
	}
	for i := range values {
		values[i] /= sum
	}

	return Curve{Thetas: thetas, Values: values, Step: step}, nil
}

// #endregion evaluate

// #region curve-metrics

// Integral returns the left Riemann sum of the curve. For a normalized
// curve this is 1 up to floating-point error.
func (c Curve) Integral() float64 {
	var sum float64
	for _, v := range c.Values {
		sum += v
	}
	return sum * c.Step
}

// Mean returns the grid approximation of the posterior expectation.
func (c Curve) Mean() float64 {
	var sum float64
	for i, v := range c.Values {
		sum += c.Thetas[i] * v
	}
	return sum * c.Step
}

// At returns the interpolated density value at theta via nearest grid point.
func (c Curve) At(theta float64) float64 {
	if len(c.Values) == 0 {
		return 0
	}
	i := int(theta / c.Step)
	if i < 0 {
		i = 0
	}
	if i >= len(c.Values) {
		i = len(c.Values) - 1
	}
	return c.Values[i]
}

// #endregion curve-metrics
