package model

import (
	"errors"
	"math"
	"testing"
)

func TestCalibrationUpdate(t *testing.T) {
	prior := Prior{Alpha: 2, Beta: 3}
	data, err := NewDatasetFromCounts(7, 10)
	if err != nil {
		t.Fatalf("NewDatasetFromCounts: %v", err)
	}

	post, err := Update(prior, data)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if post.Alpha != 9 || post.Beta != 6 {
		t.Fatalf("expected Beta(9,6), got Beta(%g,%g)", post.Alpha, post.Beta)
	}
	if math.Abs(post.Mean()-0.6) > 1e-9 {
		t.Fatalf("expected mean 0.6, got %.12f", post.Mean())
	}
}

func TestUpdateCountsArbitrary(t *testing.T) {
	cases := []struct {
		alpha, beta          float64
		successes, trials    int
		wantAlpha, wantBeta  float64
	}{
		{1, 1, 0, 0, 1, 1},
		{1, 1, 5, 5, 6, 1},
		{0.5, 0.5, 3, 8, 3.5, 5.5},
		{2, 3, 7, 10, 9, 6},
	}
	for _, c := range cases {
		data, err := NewDatasetFromCounts(c.successes, c.trials)
		if err != nil {
			t.Fatalf("counts %d/%d: %v", c.successes, c.trials, err)
		}
		post, err := Update(Prior{Alpha: c.alpha, Beta: c.beta}, data)
		if err != nil {
			t.Fatalf("Update(%g,%g): %v", c.alpha, c.beta, err)
		}
		if post.Alpha != c.wantAlpha || post.Beta != c.wantBeta {
			t.Fatalf("prior Beta(%g,%g) + %d/%d: expected Beta(%g,%g), got Beta(%g,%g)",
				c.alpha, c.beta, c.successes, c.trials, c.wantAlpha, c.wantBeta, post.Alpha, post.Beta)
		}
	}
}

func TestBoundaryAllSuccesses(t *testing.T) {
	data, err := NewDatasetFromCounts(5, 5)
	if err != nil {
		t.Fatalf("NewDatasetFromCounts: %v", err)
	}
	post, err := Update(Prior{Alpha: 1, Beta: 1}, data)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if post.Alpha != 6 || post.Beta != 1 {
		t.Fatalf("expected Beta(6,1), got Beta(%g,%g)", post.Alpha, post.Beta)
	}
	if math.Abs(post.Mean()-6.0/7.0) > 1e-9 {
		t.Fatalf("expected mean 6/7, got %.12f", post.Mean())
	}
}

func TestInvalidPrior(t *testing.T) {
	data := DefaultDataset()
	for _, p := range []Prior{{0, 1}, {1, 0}, {-2, 3}, {2, -3}} {
		if _, err := Update(p, data); !errors.Is(err, ErrInvalidPrior) {
			t.Fatalf("prior Beta(%g,%g): expected ErrInvalidPrior, got %v", p.Alpha, p.Beta, err)
		}
	}
}

func TestInvalidData(t *testing.T) {
	if _, err := NewDataset([]int{1, 0, 2}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if _, err := NewDataset([]int{-1}); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if _, err := NewDatasetFromCounts(11, 10); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for 11/10, got %v", err)
	}
	if _, err := NewDatasetFromCounts(-1, 10); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for -1/10, got %v", err)
	}
}

func TestParseOutcomes(t *testing.T) {
	d, err := ParseOutcomes("1, 1, 0, 1,0")
	if err != nil {
		t.Fatalf("ParseOutcomes: %v", err)
	}
	if d.Len() != 5 || d.Successes() != 3 || d.Failures() != 2 {
		t.Fatalf("expected 3 successes of 5, got %d of %d", d.Successes(), d.Len())
	}

	if _, err := ParseOutcomes("1,2"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if _, err := ParseOutcomes("1,x"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}

	empty, err := ParseOutcomes("")
	if err != nil {
		t.Fatalf("ParseOutcomes empty: %v", err)
	}
	if empty.Len() != 0 {
		t.Fatalf("expected empty dataset, got %d outcomes", empty.Len())
	}
}

func TestPosteriorMoments(t *testing.T) {
	post := Posterior{Alpha: 9, Beta: 6}

	wantVar := 9.0 * 6.0 / (15.0 * 15.0 * 16.0)
	if math.Abs(post.Variance()-wantVar) > 1e-12 {
		t.Fatalf("expected variance %.9f, got %.9f", wantVar, post.Variance())
	}

	mode, ok := post.Mode()
	if !ok {
		t.Fatal("expected mode to be defined")
	}
	if math.Abs(mode-8.0/13.0) > 1e-12 {
		t.Fatalf("expected mode 8/13, got %.9f", mode)
	}

	if _, ok := (Posterior{Alpha: 1, Beta: 6}).Mode(); ok {
		t.Fatal("mode should be undefined for alpha=1")
	}
}

func TestDatasetImmutable(t *testing.T) {
	raw := []int{1, 0, 1}
	d, err := NewDataset(raw)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	raw[0] = 0
	if d.Successes() != 2 {
		t.Fatalf("dataset aliased caller slice: %d successes", d.Successes())
	}
	out := d.Outcomes()
	out[1] = 1
	if d.Failures() != 1 {
		t.Fatalf("Outcomes copy aliased internal slice: %d failures", d.Failures())
	}
}
