package eval

import (
	"fmt"

	"github.com/danielpatrickdp/posterior-lab/internal/density"
	"github.com/danielpatrickdp/posterior-lab/internal/summary"
)

// #region eval-harness
// EvalHarness runs lightweight post-run validation on an estimation result.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates an eval harness with the given configuration.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run validates the closed-form curve and the sampled summary against the
// configured thresholds. Returns pass/fail with per-check metrics.
func (h *EvalHarness) Run(curve density.Curve, sum summary.Summary) EvalResult {
	var metrics []EvalMetric
	passed := true
	var failReasons []string

	// 1. Support bounds: every retained draw must lie in [0,1]
	minPass := sum.Min >= 0
	metrics = append(metrics, EvalMetric{Name: "support_min", Value: sum.Min, Pass: minPass})
	if !minPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("min draw %.6f below support", sum.Min))
	}

	maxPass := sum.Max <= 1
	metrics = append(metrics, EvalMetric{Name: "support_max", Value: sum.Max, Pass: maxPass})
	if !maxPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("max draw %.6f above support", sum.Max))
	}

	// 2. Density integral: the normalized curve must sum to 1 within
	// discretization error (tolerance scales with the grid step)
	integral := curve.Integral()
	tol := h.config.IntegralSlack * curve.Step
	if tol < 1e-9 {
		tol = 1e-9
	}
	integralPass := integral > 1-tol && integral < 1+tol
	metrics = append(metrics, EvalMetric{Name: "density_integral", Value: integral, Pass: integralPass})
	if !integralPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("integral %.6f outside 1±%.2g", integral, tol))
	}

	// 3. Monte-Carlo error against the analytic mean
	errPass := sum.AbsError <= h.config.MaxAbsError
	metrics = append(metrics, EvalMetric{Name: "mc_abs_error", Value: sum.AbsError, Pass: errPass})
	if !errPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("abs error %.4f exceeds %.4f", sum.AbsError, h.config.MaxAbsError))
	}

	// 4. Retained draw count
	countPass := sum.Count >= h.config.MinSamples
	metrics = append(metrics, EvalMetric{Name: "sample_count", Value: float64(sum.Count), Pass: countPass})
	if !countPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("%d draws below minimum %d", sum.Count, h.config.MinSamples))
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return EvalResult{
		Passed:  passed,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness
