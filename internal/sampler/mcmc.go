package sampler

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
)

// #region proposal

// walkProposal is a Gaussian random-walk conditional proposal centered on
// the current chain position.
type walkProposal struct {
	sigma float64
	src   rand.Source
}

func (p walkProposal) ConditionalRand(y float64) float64 {
	return distuv.Normal{Mu: y, Sigma: p.sigma, Src: p.src}.Rand()
}

func (p walkProposal) ConditionalLogProb(x, y float64) float64 {
	return distuv.Normal{Mu: y, Sigma: p.sigma}.LogProb(x)
}

// #endregion proposal

// #region mcmc

// mcmcSampler runs random-walk Metropolis-Hastings against the posterior.
// Proposals outside [0,1] score -Inf under the Beta target and are
// rejected, so the chain never leaves the support.
type mcmcSampler struct{}

func (mcmcSampler) ID() ID { return MCMC }

func (mcmcSampler) Sample(post model.Posterior, cfg Config) ([]float64, error) {
	if err := validate(post, cfg, true); err != nil {
		return nil, err
	}

	src := rand.NewSource(cfg.Seed)
	target := distuv.Beta{Alpha: post.Alpha, Beta: post.Beta}

	mh := sampleuv.MetropolisHastings{
		Initial:  post.Mean(), // interior point, always in (0,1) for valid shapes
		Target:   target,
		Proposal: walkProposal{sigma: cfg.Walk, src: src},
		Src:      src,
		BurnIn:   cfg.BurnIn,
	}

	samples := make([]float64, cfg.Iterations)
	mh.Sample(samples)
	return samples, nil
}

// #endregion mcmc
