package gate

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/posterior-lab/internal/density"
	"github.com/danielpatrickdp/posterior-lab/internal/summary"
)

// #region gate
// Gate evaluates whether an estimation run should be committed to the run
// store or rejected.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Evaluate checks hard vetoes first, then scores the Monte-Carlo error margin.
// Takes the raw retained draws, their summary, and the closed-form curve.
func (g *Gate) Evaluate(samples []float64, sum summary.Summary, curve density.Curve) GateDecision {
	var vetoes []VetoSignal

	// --- Hard veto pass ---

	// 1. Empty sample set: nothing to estimate from
	if len(samples) == 0 {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoEmptySamples,
			Reason: "sampler returned no retained draws",
		})
	}

	// 2. Non-finite estimate
	if math.IsNaN(sum.Mean) || math.IsInf(sum.Mean, 0) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNumeric,
			Reason: fmt.Sprintf("sample mean is %v", sum.Mean),
		})
	}

	// 3. Draws outside the support of theta
	if len(samples) > 0 && (sum.Min < 0 || sum.Max > 1) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoSupport,
			Reason: fmt.Sprintf("draw range [%.6f, %.6f] leaves [0,1]", sum.Min, sum.Max),
		})
	}

	// 4. Non-finite density normalization
	integral := curve.Integral()
	if math.IsNaN(integral) || math.IsInf(integral, 0) {
		vetoes = append(vetoes, VetoSignal{
			Type:   VetoNumeric,
			Reason: fmt.Sprintf("density integral is %v", integral),
		})
	}

	// If any hard vetoes, reject immediately
	if len(vetoes) > 0 {
		return GateDecision{
			Action:      "reject",
			Reason:      fmt.Sprintf("hard veto: %s", vetoes[0].Reason),
			Vetoed:      true,
			VetoSignals: vetoes,
			SoftScore:   0,
		}
	}

	// --- Soft score: how much error budget the run left unused ---
	score := 1.0
	if g.config.MaxAbsError > 0 {
		score = 1 - sum.AbsError/g.config.MaxAbsError
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return GateDecision{
		Action:    "commit",
		Reason:    fmt.Sprintf("abs error %.6f within budget %.6f", sum.AbsError, g.config.MaxAbsError),
		SoftScore: score,
	}
}

// #endregion gate
