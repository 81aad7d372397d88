package pipeline

// #region imports
import (
	"github.com/danielpatrickdp/posterior-lab/internal/density"
	"github.com/danielpatrickdp/posterior-lab/internal/eval"
	"github.com/danielpatrickdp/posterior-lab/internal/gate"
	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/sampler"
	"github.com/danielpatrickdp/posterior-lab/internal/summary"
)

// #endregion

// #region data-shape

// DataShape classifies the observed outcome sequence.
type DataShape string

const (
	ShapeEmpty        DataShape = "empty"
	ShapeAllSuccesses DataShape = "all_successes"
	ShapeAllFailures  DataShape = "all_failures"
	ShapeSkewed       DataShape = "skewed"
	ShapeBalanced     DataShape = "balanced"
)

// #endregion data-shape

// #region request

// Request carries everything needed for one estimation run.
type Request struct {
	Prior         model.Prior
	Data          model.Dataset
	Sampler       sampler.ID // may be Auto; resolved by the strategy table
	SamplerConfig sampler.Config
	GridSize      int
	GateConfig    gate.GateConfig
	EvalConfig    eval.EvalConfig
}

// DefaultRequest returns the calibration request: Beta(2,3) prior,
// 7 successes of 10, 10000 retained draws.
func DefaultRequest() Request {
	return Request{
		Prior:         model.DefaultPrior(),
		Data:          model.DefaultDataset(),
		Sampler:       sampler.Auto,
		SamplerConfig: sampler.DefaultConfig(),
		GridSize:      1000,
		GateConfig:    gate.DefaultGateConfig(),
		EvalConfig:    eval.DefaultEvalConfig(),
	}
}

// #endregion request

// #region result

// Result bundles everything produced by a single pipeline pass.
type Result struct {
	RunID   string
	Shape   DataShape
	Sampler sampler.ID // resolved implementation

	Posterior model.Posterior
	Curve     density.Curve
	Samples   []float64
	Summary   summary.Summary

	Gate gate.GateDecision
	Eval eval.EvalResult

	// Action is "commit", "gate_reject", or "eval_rollback".
	Action string
	Reason string
}

// #endregion result
