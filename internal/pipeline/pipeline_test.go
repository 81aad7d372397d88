package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/sampler"
)

func TestCalibrationRunCommits(t *testing.T) {
	result, err := Run(DefaultRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Action != "commit" {
		t.Fatalf("expected commit, got %s: %s", result.Action, result.Reason)
	}
	if result.Posterior.Alpha != 9 || result.Posterior.Beta != 6 {
		t.Fatalf("expected Beta(9,6), got Beta(%g,%g)", result.Posterior.Alpha, result.Posterior.Beta)
	}
	if result.RunID == "" {
		t.Fatal("expected non-empty run id")
	}
	if result.Sampler != sampler.Conjugate {
		t.Fatalf("auto should resolve to conjugate, got %s", result.Sampler)
	}
	if result.Shape != ShapeBalanced {
		t.Fatalf("7/10 should classify balanced, got %s", result.Shape)
	}
	if math.Abs(result.Summary.Mean-0.6) > 0.02 {
		t.Fatalf("Monte-Carlo mean %.4f too far from 0.6", result.Summary.Mean)
	}
	if !result.Eval.Passed {
		t.Fatalf("eval should pass: %s", result.Eval.Reason)
	}
}

func TestRunRejectsInvalidPrior(t *testing.T) {
	req := DefaultRequest()
	req.Prior = model.Prior{Alpha: 0, Beta: 3}
	if _, err := Run(req); !errors.Is(err, model.ErrInvalidPrior) {
		t.Fatalf("expected ErrInvalidPrior, got %v", err)
	}
}

func TestRunMCMC(t *testing.T) {
	req := DefaultRequest()
	req.Sampler = sampler.MCMC

	result, err := Run(req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Sampler != sampler.MCMC {
		t.Fatalf("expected mcmc, got %s", result.Sampler)
	}
	if result.Action != "commit" {
		t.Fatalf("expected commit, got %s: %s", result.Action, result.Reason)
	}
	for i, x := range result.Samples {
		if x < 0 || x > 1 {
			t.Fatalf("draw %g outside [0,1] at index %d", x, i)
		}
	}
}

func TestDegenerateShapeForcesConjugate(t *testing.T) {
	data, err := model.NewDatasetFromCounts(5, 5)
	if err != nil {
		t.Fatalf("NewDatasetFromCounts: %v", err)
	}

	req := DefaultRequest()
	req.Prior = model.Prior{Alpha: 1, Beta: 1}
	req.Data = data
	req.Sampler = sampler.MCMC

	result, err := Run(req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Shape != ShapeAllSuccesses {
		t.Fatalf("expected all_successes, got %s", result.Shape)
	}
	if result.Sampler != sampler.Conjugate {
		t.Fatalf("degenerate shape should force conjugate, got %s", result.Sampler)
	}
	if result.Posterior.Alpha != 6 || result.Posterior.Beta != 1 {
		t.Fatalf("expected Beta(6,1), got Beta(%g,%g)", result.Posterior.Alpha, result.Posterior.Beta)
	}
	if math.Abs(result.Summary.AnalyticMean-6.0/7.0) > 1e-9 {
		t.Fatalf("expected analytic mean 6/7, got %.9f", result.Summary.AnalyticMean)
	}
}

func TestEmptyDataKeepsPrior(t *testing.T) {
	req := DefaultRequest()
	req.Data = model.Dataset{}

	result, err := Run(req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Shape != ShapeEmpty {
		t.Fatalf("expected empty shape, got %s", result.Shape)
	}
	// No observations: the posterior is the prior
	if result.Posterior.Alpha != 2 || result.Posterior.Beta != 3 {
		t.Fatalf("expected Beta(2,3), got Beta(%g,%g)", result.Posterior.Alpha, result.Posterior.Beta)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		successes, trials int
		want              DataShape
	}{
		{0, 0, ShapeEmpty},
		{5, 5, ShapeAllSuccesses},
		{0, 5, ShapeAllFailures},
		{5, 10, ShapeBalanced},
		{7, 10, ShapeBalanced}, // band edge: 0.7 is still balanced
		{9, 10, ShapeSkewed},
		{1, 10, ShapeSkewed},
	}
	for _, c := range cases {
		d, err := model.NewDatasetFromCounts(c.successes, c.trials)
		if err != nil {
			t.Fatalf("counts %d/%d: %v", c.successes, c.trials, err)
		}
		if got := Classify(d); got != c.want {
			t.Fatalf("%d/%d: expected %s, got %s", c.successes, c.trials, c.want, got)
		}
	}
}

func TestStrategyDefaultsFill(t *testing.T) {
	cfg := applyStrategy(sampler.MCMC, sampler.Config{Seed: 9})
	if cfg.Iterations != 10000 || cfg.BurnIn != 1000 || cfg.Walk != 0.25 {
		t.Fatalf("unexpected filled config: %+v", cfg)
	}
	if cfg.Seed != 9 {
		t.Fatalf("seed should be preserved, got %d", cfg.Seed)
	}

	cfg = applyStrategy(sampler.Conjugate, sampler.Config{Iterations: 500, BurnIn: 50})
	if cfg.BurnIn != 0 {
		t.Fatalf("conjugate strategy should zero burn-in, got %d", cfg.BurnIn)
	}
	if cfg.Iterations != 500 {
		t.Fatalf("explicit iterations should be preserved, got %d", cfg.Iterations)
	}
}
