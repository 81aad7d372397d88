package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/posterior-lab/internal/logging"
	"github.com/danielpatrickdp/posterior-lab/internal/model"
	"github.com/danielpatrickdp/posterior-lab/internal/pipeline"
	"github.com/danielpatrickdp/posterior-lab/internal/plotting"
	"github.com/danielpatrickdp/posterior-lab/internal/presets"
	"github.com/danielpatrickdp/posterior-lab/internal/sampler"
	"github.com/danielpatrickdp/posterior-lab/internal/store"
)

// #region main

func main() {
	alpha := flag.Float64("alpha", 2, "prior alpha (must be > 0)")
	beta := flag.Float64("beta", 3, "prior beta (must be > 0)")
	dataStr := flag.String("data", "", "comma-separated 0/1 outcomes; overrides -successes/-trials")
	successes := flag.Int("successes", 7, "observed successes")
	trials := flag.Int("trials", 10, "observed trials")
	iters := flag.Int("iters", 10000, "retained posterior draws")
	burnin := flag.Int("burnin", 1000, "MCMC warm-up draws to discard")
	walk := flag.Float64("walk", 0.25, "MCMC Gaussian proposal sigma")
	samplerID := flag.String("sampler", "auto", "sampler: auto|conjugate|mcmc")
	seed := flag.Uint64("seed", 1, "PRNG seed")
	grid := flag.Int("grid", 1000, "closed-form density grid points")
	plotPath := flag.String("plot", "", "write histogram/density overlay to this file (png/svg/pdf)")
	dbPath := flag.String("db", envOr("POSTERIOR_DB", ""), "persist the run to this SQLite file")
	presetName := flag.String("preset", "", "load parameters from a stored preset (requires -db)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	req := pipeline.DefaultRequest()
	req.Prior = model.Prior{Alpha: *alpha, Beta: *beta}
	req.Sampler = sampler.ID(*samplerID)
	req.SamplerConfig = sampler.Config{
		Iterations: *iters,
		BurnIn:     *burnin,
		Seed:       *seed,
		Walk:       *walk,
	}
	req.GridSize = *grid

	var runStore *store.Store
	if *dbPath != "" {
		var err error
		runStore, err = store.NewStore(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open db: %v\n", err)
			os.Exit(1)
		}
		defer runStore.Close()
	}

	if *presetName != "" {
		if runStore == nil {
			fmt.Fprintln(os.Stderr, "usage: -preset requires -db")
			os.Exit(2)
		}
		if err := applyPreset(runStore, *presetName, &req); err != nil {
			fmt.Fprintf(os.Stderr, "preset: %v\n", err)
			os.Exit(1)
		}
	} else {
		data, err := buildDataset(*dataStr, *successes, *trials)
		if err != nil {
			fmt.Fprintf(os.Stderr, "data: %v\n", err)
			os.Exit(2)
		}
		req.Data = data
	}

	result, err := pipeline.Run(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimate: %v\n", err)
		os.Exit(1)
	}

	if runStore != nil {
		if err := persistRun(runStore, req, result); err != nil {
			fmt.Fprintf(os.Stderr, "persist: %v\n", err)
			os.Exit(1)
		}
	}

	if *plotPath != "" {
		if err := plotting.WriteOverlay(*plotPath, result.Samples, result.Curve, 40); err != nil {
			fmt.Fprintf(os.Stderr, "plot: %v\n", err)
			os.Exit(1)
		}
	}

	if err := printResult(result, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "output: %v\n", err)
		os.Exit(1)
	}

	if result.Action != "commit" {
		os.Exit(1)
	}
}

// #endregion main

// #region inputs

func buildDataset(dataStr string, successes, trials int) (model.Dataset, error) {
	if dataStr != "" {
		return model.ParseOutcomes(dataStr)
	}
	return model.NewDatasetFromCounts(successes, trials)
}

func applyPreset(runStore *store.Store, name string, req *pipeline.Request) error {
	ps, err := presets.NewPresetStore(runStore.DB())
	if err != nil {
		return err
	}
	if err := ps.SeedDefaults(); err != nil {
		return err
	}
	p, err := ps.Get(name)
	if err != nil {
		return err
	}

	req.Prior = model.Prior{Alpha: p.Alpha, Beta: p.Beta}
	data, err := model.NewDatasetFromCounts(p.Successes, p.Trials)
	if err != nil {
		return err
	}
	req.Data = data
	req.Sampler = sampler.ID(p.Sampler)
	req.SamplerConfig = sampler.Config{
		Iterations: p.Iterations,
		BurnIn:     p.BurnIn,
		Seed:       p.Seed,
		Walk:       p.Walk,
	}
	return nil
}

// #endregion inputs

// #region persist

// persistRun saves the run and logs the gate and eval decisions. A rejected
// run keeps its log rows but drops the raw draws.
func persistRun(runStore *store.Store, req pipeline.Request, result pipeline.Result) error {
	samples := result.Samples
	if result.Action != "commit" {
		samples = nil
	}

	rec := store.RunRecord{
		RunID:          result.RunID,
		PriorAlpha:     req.Prior.Alpha,
		PriorBeta:      req.Prior.Beta,
		Successes:      req.Data.Successes(),
		Trials:         req.Data.Len(),
		Sampler:        string(result.Sampler),
		Iterations:     req.SamplerConfig.Iterations,
		BurnIn:         req.SamplerConfig.BurnIn,
		Seed:           req.SamplerConfig.Seed,
		Walk:           req.SamplerConfig.Walk,
		GridSize:       req.GridSize,
		PosteriorAlpha: result.Posterior.Alpha,
		PosteriorBeta:  result.Posterior.Beta,
		AnalyticMean:   result.Summary.AnalyticMean,
		SampleMean:     result.Summary.Mean,
		AbsError:       result.Summary.AbsError,
		Samples:        samples,
	}
	if err := runStore.SaveRun(rec); err != nil {
		return err
	}

	er := logging.EstimateRecord{
		RunID:          result.RunID,
		PriorAlpha:     req.Prior.Alpha,
		PriorBeta:      req.Prior.Beta,
		Successes:      req.Data.Successes(),
		Trials:         req.Data.Len(),
		Sampler:        string(result.Sampler),
		Iterations:     req.SamplerConfig.Iterations,
		BurnIn:         req.SamplerConfig.BurnIn,
		Seed:           req.SamplerConfig.Seed,
		Walk:           req.SamplerConfig.Walk,
		GridSize:       req.GridSize,
		PosteriorAlpha: result.Posterior.Alpha,
		PosteriorBeta:  result.Posterior.Beta,
		AnalyticMean:   result.Summary.AnalyticMean,
		SampleMean:     result.Summary.Mean,
		AbsError:       result.Summary.AbsError,
		GateSoftScore:  result.Gate.SoftScore,
		EvalPassed:     result.Eval.Passed,
	}
	metrics, err := er.Encode()
	if err != nil {
		return err
	}

	if err := logging.LogDecision(runStore.DB(), logging.RunLogEntry{
		RunID:       result.RunID,
		Stage:       "gate",
		Decision:    result.Gate.Action,
		Reason:      result.Gate.Reason,
		MetricsJSON: metrics,
	}); err != nil {
		return err
	}

	evalDecision := "pass"
	if !result.Eval.Passed {
		evalDecision = "fail"
	}
	return logging.LogDecision(runStore.DB(), logging.RunLogEntry{
		RunID:    result.RunID,
		Stage:    "eval",
		Decision: evalDecision,
		Reason:   result.Eval.Reason,
	})
}

// #endregion persist

// #region output

type output struct {
	RunID          string  `json:"run_id"`
	Shape          string  `json:"shape"`
	Sampler        string  `json:"sampler"`
	PosteriorAlpha float64 `json:"posterior_alpha"`
	PosteriorBeta  float64 `json:"posterior_beta"`
	AnalyticMean   float64 `json:"analytic_mean"`
	SampleMean     float64 `json:"sample_mean"`
	AbsError       float64 `json:"abs_error"`
	StdDev         float64 `json:"std_dev"`
	CredibleLow    float64 `json:"credible_low"`
	CredibleHigh   float64 `json:"credible_high"`
	Action         string  `json:"action"`
	Reason         string  `json:"reason"`
	GateSoftScore  float64 `json:"gate_soft_score"`
}

func printResult(result pipeline.Result, jsonOut bool) error {
	out := output{
		RunID:          result.RunID,
		Shape:          string(result.Shape),
		Sampler:        string(result.Sampler),
		PosteriorAlpha: result.Posterior.Alpha,
		PosteriorBeta:  result.Posterior.Beta,
		AnalyticMean:   result.Summary.AnalyticMean,
		SampleMean:     result.Summary.Mean,
		AbsError:       result.Summary.AbsError,
		StdDev:         result.Summary.StdDev,
		CredibleLow:    result.Summary.CredibleLow,
		CredibleHigh:   result.Summary.CredibleHigh,
		Action:         result.Action,
		Reason:         result.Reason,
		GateSoftScore:  result.Gate.SoftScore,
	}

	if jsonOut {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Run:          %s\n", out.RunID)
	fmt.Printf("Data shape:   %s\n", out.Shape)
	fmt.Printf("Sampler:      %s\n", out.Sampler)
	fmt.Printf("Posterior:    Beta(%g, %g)\n", out.PosteriorAlpha, out.PosteriorBeta)
	fmt.Printf("Analytic:     %.6f\n", out.AnalyticMean)
	fmt.Printf("Sample mean:  %.6f\n", out.SampleMean)
	fmt.Printf("Abs error:    %.6f\n", out.AbsError)
	fmt.Printf("Std dev:      %.6f\n", out.StdDev)
	fmt.Printf("90%% interval: [%.4f, %.4f]\n", out.CredibleLow, out.CredibleHigh)
	fmt.Printf("Decision:     %s (%s)\n", out.Action, out.Reason)
	return nil
}

// #endregion output

// #region env

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion env
