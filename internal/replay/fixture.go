package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/posterior-lab/internal/logging"
	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/pipeline"
	"github.com/danielpatrickdp/posterior-lab/internal/sampler"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one recorded estimation setup with its expected outcome.
type FixtureCase struct {
	Name          string               `json:"name"`
	Prior         FixturePrior         `json:"prior"`
	Data          FixtureData          `json:"data"`
	SamplerConfig FixtureSamplerConfig `json:"sampler_config"`
	Expected      FixtureExpected      `json:"expected"`
}

// FixturePrior mirrors model.Prior with JSON tags.
type FixturePrior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// FixtureData holds the observed counts.
type FixtureData struct {
	Successes int `json:"successes"`
	Trials    int `json:"trials"`
}

// FixtureSamplerConfig mirrors sampler.Config plus the sampler ID and grid.
type FixtureSamplerConfig struct {
	Sampler    string  `json:"sampler"`
	Iterations int     `json:"iterations"`
	BurnIn     int     `json:"burn_in"`
	Seed       uint64  `json:"seed"`
	Walk       float64 `json:"walk"`
	GridSize   int     `json:"grid_size"`
}

// FixtureExpected captures the expected outcome per case.
type FixtureExpected struct {
	PosteriorAlpha float64 `json:"posterior_alpha"`
	PosteriorBeta  float64 `json:"posterior_beta"`
	AnalyticMean   float64 `json:"analytic_mean"`
	MaxAbsError    float64 `json:"max_abs_error"`
	Action         string  `json:"action"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("fixture %s has no cases", path)
	}
	return &f, nil
}

// WriteFixture serializes a fixture to disk with indentation.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToRequest converts a fixture case to a pipeline request.
func (c *FixtureCase) ToRequest() (pipeline.Request, error) {
	data, err := model.NewDatasetFromCounts(c.Data.Successes, c.Data.Trials)
	if err != nil {
		return pipeline.Request{}, err
	}
	req := pipeline.DefaultRequest()
	req.Prior = model.Prior{Alpha: c.Prior.Alpha, Beta: c.Prior.Beta}
	req.Data = data
	req.Sampler = sampler.ID(c.SamplerConfig.Sampler)
	req.SamplerConfig = sampler.Config{
		Iterations: c.SamplerConfig.Iterations,
		BurnIn:     c.SamplerConfig.BurnIn,
		Seed:       c.SamplerConfig.Seed,
		Walk:       c.SamplerConfig.Walk,
	}
	req.GridSize = c.SamplerConfig.GridSize
	return req, nil
}

// CaseFromRecord rebuilds a fixture case from a logged estimate record,
// expecting the run to reproduce its own stored outcome.
func CaseFromRecord(er logging.EstimateRecord, maxAbsError float64) FixtureCase {
	return FixtureCase{
		Name:  er.RunID,
		Prior: FixturePrior{Alpha: er.PriorAlpha, Beta: er.PriorBeta},
		Data:  FixtureData{Successes: er.Successes, Trials: er.Trials},
		SamplerConfig: FixtureSamplerConfig{
			Sampler:    er.Sampler,
			Iterations: er.Iterations,
			BurnIn:     er.BurnIn,
			Seed:       er.Seed,
			Walk:       er.Walk,
			GridSize:   er.GridSize,
		},
		Expected: FixtureExpected{
			PosteriorAlpha: er.PosteriorAlpha,
			PosteriorBeta:  er.PosteriorBeta,
			AnalyticMean:   er.AnalyticMean,
			MaxAbsError:    maxAbsError,
			Action:         "commit",
		},
	}
}

// #endregion fixture-loader
