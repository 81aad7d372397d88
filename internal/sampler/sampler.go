package sampler

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
)

// #region interface

// Sampler produces draws approximating the posterior distribution.
type Sampler interface {
	ID() ID
	// Sample returns cfg.Iterations retained draws, each in [0,1].
	// Warm-up handling is implementation-specific: the conjugate sampler
	// draws i.i.d. and has nothing to discard, the MCMC sampler discards
	// cfg.BurnIn draws before retention.
	Sample(post model.Posterior, cfg Config) ([]float64, error)
}

// New returns the sampler for a concrete ID. Auto must be resolved by the
// caller before construction.
func New(id ID) (Sampler, error) {
	switch id {
	case Conjugate:
		return conjugateSampler{}, nil
	case MCMC:
		return mcmcSampler{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, id)
	}
}

// #endregion interface

// #region validate

func validate(post model.Posterior, cfg Config, needWalk bool) error {
	if err := post.Validate(); err != nil {
		return err
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("%w: iterations %d", ErrBadConfig, cfg.Iterations)
	}
	if cfg.BurnIn < 0 {
		return fmt.Errorf("%w: burn-in %d", ErrBadConfig, cfg.BurnIn)
	}
	if needWalk && cfg.Walk <= 0 {
		return fmt.Errorf("%w: walk sigma %g", ErrBadConfig, cfg.Walk)
	}
	return nil
}

// #endregion validate

// #region conjugate

// conjugateSampler draws i.i.d. from the analytic Beta posterior. The model
// is conjugate, so this is exact and needs no warm-up.
type conjugateSampler struct{}

func (conjugateSampler) ID() ID { return Conjugate }

func (conjugateSampler) Sample(post model.Posterior, cfg Config) ([]float64, error) {
	if err := validate(post, cfg, false); err != nil {
		return nil, err
	}

	dist := distuv.Beta{
		Alpha: post.Alpha,
		Beta:  post.Beta,
		Src:   rand.NewSource(cfg.Seed),
	}
	samples := make([]float64, cfg.Iterations)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples, nil
}

// #endregion conjugate
