package gate

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/posterior-lab/internal/density"
	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/summary"
)

func calibrationCurve(t *testing.T) density.Curve {
	t.Helper()
	curve, err := density.Evaluate(model.Posterior{Alpha: 9, Beta: 6}, density.DefaultConfig())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return curve
}

func goodSummary() summary.Summary {
	return summary.Summary{
		Count:        10000,
		Mean:         0.601,
		Min:          0.12,
		Max:          0.95,
		AnalyticMean: 0.6,
		AbsError:     0.001,
	}
}

func TestGateCommits(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	d := g.Evaluate([]float64{0.5, 0.6}, goodSummary(), calibrationCurve(t))

	if d.Action != "commit" {
		t.Fatalf("expected commit, got %s: %s", d.Action, d.Reason)
	}
	if d.Vetoed {
		t.Fatal("commit decision should not be vetoed")
	}
	if d.SoftScore <= 0.9 {
		t.Fatalf("expected high soft score for tiny error, got %.4f", d.SoftScore)
	}
}

func TestGateVetoesEmptySamples(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	d := g.Evaluate(nil, summary.Summary{}, calibrationCurve(t))

	if d.Action != "reject" || !d.Vetoed {
		t.Fatalf("expected vetoed reject, got %s", d.Action)
	}
	if d.VetoSignals[0].Type != VetoEmptySamples {
		t.Fatalf("expected empty_samples veto, got %s", d.VetoSignals[0].Type)
	}
}

func TestGateVetoesNaNMean(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	sum := goodSummary()
	sum.Mean = math.NaN()

	d := g.Evaluate([]float64{0.5}, sum, calibrationCurve(t))
	if d.Action != "reject" {
		t.Fatalf("expected reject, got %s", d.Action)
	}
	found := false
	for _, v := range d.VetoSignals {
		if v.Type == VetoNumeric {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a numeric_violation veto")
	}
}

func TestGateVetoesSupportViolation(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	sum := goodSummary()
	sum.Max = 1.2

	d := g.Evaluate([]float64{0.5, 1.2}, sum, calibrationCurve(t))
	if d.Action != "reject" {
		t.Fatalf("expected reject, got %s", d.Action)
	}
	if d.VetoSignals[0].Type != VetoSupport {
		t.Fatalf("expected support_violation veto, got %s", d.VetoSignals[0].Type)
	}
	if d.SoftScore != 0 {
		t.Fatalf("vetoed run should score 0, got %.4f", d.SoftScore)
	}
}

func TestGateSoftScoreScales(t *testing.T) {
	g := NewGate(GateConfig{MaxAbsError: 0.02})

	sum := goodSummary()
	sum.AbsError = 0.01
	d := g.Evaluate([]float64{0.5}, sum, calibrationCurve(t))
	if math.Abs(d.SoftScore-0.5) > 1e-9 {
		t.Fatalf("expected soft score 0.5 at half budget, got %.4f", d.SoftScore)
	}

	sum.AbsError = 0.04 // over budget but no hard veto: commit with zero margin
	d = g.Evaluate([]float64{0.5}, sum, calibrationCurve(t))
	if d.Action != "commit" {
		t.Fatalf("soft overage should not reject, got %s", d.Action)
	}
	if d.SoftScore != 0 {
		t.Fatalf("expected clamped soft score 0, got %.4f", d.SoftScore)
	}
}
