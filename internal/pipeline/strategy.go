package pipeline

import "github.com/danielpatrickdp/posterior-lab/internal/sampler"

// #region strategy-definitions

// StrategyConfig holds per-sampler default parameters.
type StrategyConfig struct {
	ID         sampler.ID
	Iterations int
	BurnIn     int
	Walk       float64
}

// Strategies returns the full set of built-in sampler strategy configs.
var Strategies = map[sampler.ID]StrategyConfig{
	sampler.Conjugate: {
		ID:         sampler.Conjugate,
		Iterations: 10000,
		BurnIn:     0, // i.i.d. draws need no warm-up
		Walk:       0.25,
	},
	sampler.MCMC: {
		ID:         sampler.MCMC,
		Iterations: 10000,
		BurnIn:     1000,
		Walk:       0.25,
	},
}

// #endregion

// #region choose-sampler

// ChooseSampler resolves the requested ID to a concrete implementation.
// Degenerate shapes always run the conjugate sampler: a random-walk chain
// mixes poorly with posterior mass piled against a support boundary. Auto
// otherwise picks the exact conjugate shortcut.
func ChooseSampler(requested sampler.ID, shape DataShape) sampler.ID {
	switch shape {
	case ShapeEmpty, ShapeAllSuccesses, ShapeAllFailures:
		return sampler.Conjugate
	}
	if requested == sampler.Auto {
		return sampler.Conjugate
	}
	return requested
}

// #endregion

// #region apply-strategy

// applyStrategy fills unset sampler config fields from the strategy table.
func applyStrategy(id sampler.ID, cfg sampler.Config) sampler.Config {
	strat, ok := Strategies[id]
	if !ok {
		return cfg
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = strat.Iterations
	}
	if id == sampler.Conjugate {
		cfg.BurnIn = 0
	} else if cfg.BurnIn == 0 {
		cfg.BurnIn = strat.BurnIn
	}
	if cfg.Walk == 0 {
		cfg.Walk = strat.Walk
	}
	return cfg
}

// #endregion
