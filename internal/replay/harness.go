package replay

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/posterior-lab/internal/pipeline"
)

// #region types

// CaseResult captures the outcome of replaying one fixture case.
type CaseResult struct {
	Name         string
	Passed       bool
	Reason       string
	Action       string
	AnalyticMean float64
	SampleMean   float64
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// #endregion types

// #region replay

// analyticTol bounds deterministic closed-form comparisons.
const analyticTol = 1e-9

// Replay re-runs every fixture case through the full pipeline and diffs
// each outcome against its expectations. Operates entirely in-memory.
func Replay(f *Fixture) ([]CaseResult, Summary) {
	results := make([]CaseResult, 0, len(f.Cases))
	var sum Summary

	for i := range f.Cases {
		c := &f.Cases[i]
		results = append(results, replayCase(c))
	}

	for _, r := range results {
		sum.Total++
		if r.Passed {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	return results, sum
}

func replayCase(c *FixtureCase) CaseResult {
	out := CaseResult{Name: c.Name}

	req, err := c.ToRequest()
	if err != nil {
		out.Reason = fmt.Sprintf("build request: %v", err)
		return out
	}

	result, err := pipeline.Run(req)
	if err != nil {
		out.Reason = fmt.Sprintf("pipeline: %v", err)
		return out
	}

	out.Action = result.Action
	out.AnalyticMean = result.Summary.AnalyticMean
	out.SampleMean = result.Summary.Mean

	exp := c.Expected
	switch {
	case result.Posterior.Alpha != exp.PosteriorAlpha || result.Posterior.Beta != exp.PosteriorBeta:
		out.Reason = fmt.Sprintf("posterior Beta(%g,%g), expected Beta(%g,%g)",
			result.Posterior.Alpha, result.Posterior.Beta, exp.PosteriorAlpha, exp.PosteriorBeta)
	case math.Abs(result.Summary.AnalyticMean-exp.AnalyticMean) > analyticTol:
		out.Reason = fmt.Sprintf("analytic mean %.9f, expected %.9f",
			result.Summary.AnalyticMean, exp.AnalyticMean)
	case exp.Action != "" && result.Action != exp.Action:
		out.Reason = fmt.Sprintf("action %s, expected %s", result.Action, exp.Action)
	case exp.MaxAbsError > 0 && result.Summary.AbsError > exp.MaxAbsError:
		out.Reason = fmt.Sprintf("abs error %.6f exceeds %.6f",
			result.Summary.AbsError, exp.MaxAbsError)
	default:
		out.Passed = true
		out.Reason = "reproduced"
	}
	return out
}

// #endregion replay
