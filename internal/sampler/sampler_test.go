package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/posterior-lab/internal/model"
)

func sampleMean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestConjugateSupportAndConvergence(t *testing.T) {
	post := model.Posterior{Alpha: 9, Beta: 6}
	s, err := New(Conjugate)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := DefaultConfig()
	samples, err := s.Sample(post, cfg)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(samples) != cfg.Iterations {
		t.Fatalf("expected %d draws, got %d", cfg.Iterations, len(samples))
	}
	for i, x := range samples {
		if x < 0 || x > 1 {
			t.Fatalf("draw %g outside [0,1] at index %d", x, i)
		}
	}
	if diff := math.Abs(sampleMean(samples) - post.Mean()); diff > 0.02 {
		t.Fatalf("Monte-Carlo error %.4f exceeds 0.02", diff)
	}
}

func TestMCMCSupportAndConvergence(t *testing.T) {
	post := model.Posterior{Alpha: 9, Beta: 6}
	s, err := New(MCMC)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cfg := DefaultConfig()
	samples, err := s.Sample(post, cfg)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(samples) != cfg.Iterations {
		t.Fatalf("expected %d draws, got %d", cfg.Iterations, len(samples))
	}
	for i, x := range samples {
		if x < 0 || x > 1 {
			t.Fatalf("draw %g outside [0,1] at index %d", x, i)
		}
	}
	// Autocorrelated chain: wider tolerance than the i.i.d. sampler
	if diff := math.Abs(sampleMean(samples) - post.Mean()); diff > 0.05 {
		t.Fatalf("Monte-Carlo error %.4f exceeds 0.05", diff)
	}
}

func TestDeterministicUnderSeed(t *testing.T) {
	post := model.Posterior{Alpha: 9, Beta: 6}
	cfg := DefaultConfig()
	cfg.Iterations = 500
	cfg.BurnIn = 100

	for _, id := range []ID{Conjugate, MCMC} {
		s, err := New(id)
		if err != nil {
			t.Fatalf("New(%s): %v", id, err)
		}
		a, err := s.Sample(post, cfg)
		if err != nil {
			t.Fatalf("%s first run: %v", id, err)
		}
		b, err := s.Sample(post, cfg)
		if err != nil {
			t.Fatalf("%s second run: %v", id, err)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s: draws diverge at index %d with same seed", id, i)
			}
		}
	}
}

func TestConfigValidation(t *testing.T) {
	post := model.Posterior{Alpha: 9, Beta: 6}

	conj, _ := New(Conjugate)
	if _, err := conj.Sample(post, Config{Iterations: 0}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for zero iterations, got %v", err)
	}
	if _, err := conj.Sample(post, Config{Iterations: 10, BurnIn: -1}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for negative burn-in, got %v", err)
	}

	mcmc, _ := New(MCMC)
	if _, err := mcmc.Sample(post, Config{Iterations: 10, Walk: 0}); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig for zero walk sigma, got %v", err)
	}

	if _, err := conj.Sample(model.Posterior{Alpha: -1, Beta: 2}, DefaultConfig()); !errors.Is(err, model.ErrInvalidPrior) {
		t.Fatalf("expected ErrInvalidPrior, got %v", err)
	}

	if _, err := New(ID("gibbs")); !errors.Is(err, ErrUnknownSampler) {
		t.Fatalf("expected ErrUnknownSampler, got %v", err)
	}
	if _, err := New(Auto); !errors.Is(err, ErrUnknownSampler) {
		t.Fatalf("Auto must be resolved before construction, got %v", err)
	}
}
