package pipeline

// #region imports
import (
	"fmt"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/posterior-lab/internal/density"
	"github.com/danielpatrickdp/posterior-lab/internal/eval"
	"github.com/danielpatrickdp/posterior-lab/internal/gate"
	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/sampler"
	"github.com/danielpatrickdp/posterior-lab/internal/summary"
)

// #endregion

// #region run

// Run executes one estimation pass: conjugate update → closed-form curve →
// posterior draws → summary → gate → eval. Control flow is linear; a gate
// reject or eval failure is recorded in the result, not retried.
func Run(req Request) (Result, error) {
	post, err := model.Update(req.Prior, req.Data)
	if err != nil {
		return Result{}, err
	}

	shape := Classify(req.Data)
	id := ChooseSampler(req.Sampler, shape)
	cfg := applyStrategy(id, req.SamplerConfig)

	gridSize := req.GridSize
	if gridSize == 0 {
		gridSize = density.DefaultConfig().GridSize
	}
	curve, err := density.Evaluate(post, density.Config{GridSize: gridSize})
	if err != nil {
		return Result{}, fmt.Errorf("closed-form curve: %w", err)
	}

	s, err := sampler.New(id)
	if err != nil {
		return Result{}, err
	}
	samples, err := s.Sample(post, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("sampler %s: %w", id, err)
	}

	sum, err := summary.Summarize(samples, post)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		RunID:     uuid.New().String(),
		Shape:     shape,
		Sampler:   id,
		Posterior: post,
		Curve:     curve,
		Samples:   samples,
		Summary:   sum,
	}

	// 1. Gate: hard vetoes before anything is persisted
	result.Gate = gate.NewGate(req.GateConfig).Evaluate(samples, sum, curve)
	if result.Gate.Action == "reject" {
		result.Action = "gate_reject"
		result.Reason = result.Gate.Reason
		return result, nil
	}

	// 2. Eval: threshold validation of the committed estimates
	result.Eval = eval.NewEvalHarness(req.EvalConfig).Run(curve, sum)
	if !result.Eval.Passed {
		result.Action = "eval_rollback"
		result.Reason = result.Eval.Reason
		return result, nil
	}

	result.Action = "commit"
	result.Reason = result.Gate.Reason
	return result, nil
}

// #endregion run
