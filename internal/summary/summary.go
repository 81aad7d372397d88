package summary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
)

// #region summarize

// Summarize derives summary statistics from retained posterior draws and
// compares the Monte-Carlo mean against the analytic posterior mean.
func Summarize(samples []float64, post model.Posterior) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}
	if err := post.Validate(); err != nil {
		return Summary{}, err
	}

	mean := stat.Mean(samples, nil)

	stddev := 0.0
	if len(samples) > 1 {
		stddev = stat.StdDev(samples, nil)
	}

	min, max := samples[0], samples[0]
	for _, x := range samples[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	analytic := post.Mean()
	return Summary{
		Count:        len(samples),
		Mean:         mean,
		StdDev:       stddev,
		Min:          min,
		Max:          max,
		CredibleLow:  stat.Quantile(0.05, stat.Empirical, sorted, nil),
		CredibleHigh: stat.Quantile(0.95, stat.Empirical, sorted, nil),
		AnalyticMean: analytic,
		AbsError:     math.Abs(mean - analytic),
	}, nil
}

// #endregion summarize
