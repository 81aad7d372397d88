package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/posterior-lab/internal/logging"
	"github.com/danielpatrickdp/posterior-lab/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to posterior_lab.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/posterior_lab.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	runStore, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer runStore.Close()

	if *runID != "" {
		if err := runDetailMode(runStore, *runID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(runStore, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID          string  `json:"run_id"`
	PosteriorAlpha float64 `json:"posterior_alpha"`
	PosteriorBeta  float64 `json:"posterior_beta"`
	AnalyticMean   float64 `json:"analytic_mean"`
	SampleMean     float64 `json:"sample_mean"`
	AbsError       float64 `json:"abs_error"`
	Sampler        string  `json:"sampler"`
	Decision       string  `json:"decision"`
	Reason         string  `json:"reason,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func runListMode(runStore *store.Store, last int, jsonOut bool) error {
	runs, err := runStore.ListRunsWithLog(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns DESC, reverse for chronological
	rows := make([]listRow, len(runs))
	for i, r := range runs {
		rows[len(runs)-1-i] = listRow{
			RunID:          r.RunID,
			PosteriorAlpha: r.PosteriorAlpha,
			PosteriorBeta:  r.PosteriorBeta,
			AnalyticMean:   r.AnalyticMean,
			SampleMean:     r.SampleMean,
			AbsError:       r.AbsError,
			Sampler:        r.Sampler,
			Decision:       r.Decision,
			Reason:         r.Reason,
			CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	return printListTable(rows)
}

func printListTable(rows []listRow) error {
	fmt.Printf("%-12s  %-14s  %10s  %10s  %8s  %-10s  %-8s  %s\n",
		"Run", "Posterior", "Analytic", "Sample", "AbsErr", "Sampler", "Decision", "Time")
	fmt.Printf("%-12s+-%-14s+-%10s+-%10s+-%8s+-%-10s+-%-8s+-%s\n",
		"------------", "--------------", "----------", "----------", "--------", "----------", "--------", "--------------------")

	for _, r := range rows {
		decision := r.Decision
		if decision == "" {
			decision = "-"
		}
		posterior := fmt.Sprintf("Beta(%g,%g)", r.PosteriorAlpha, r.PosteriorBeta)
		fmt.Printf("%-12s  %-14s  %10.6f  %10.6f  %8.6f  %-10s  %-8s  %s\n",
			shortID(r.RunID), posterior,
			r.AnalyticMean, r.SampleMean, r.AbsError, r.Sampler, decision, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	listRow
	Successes   int     `json:"successes"`
	Trials      int     `json:"trials"`
	PriorAlpha  float64 `json:"prior_alpha"`
	PriorBeta   float64 `json:"prior_beta"`
	Iterations  int     `json:"iterations"`
	BurnIn      int     `json:"burn_in"`
	Seed        uint64  `json:"seed"`
	Walk        float64 `json:"walk"`
	GridSize    int     `json:"grid_size"`
	SampleCount int     `json:"sample_count"`

	Record *logging.EstimateRecord `json:"estimate_record,omitempty"`
}

func runDetailMode(runStore *store.Store, runID string, jsonOut bool) error {
	rec, err := runStore.GetRun(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		listRow: listRow{
			RunID:          rec.RunID,
			PosteriorAlpha: rec.PosteriorAlpha,
			PosteriorBeta:  rec.PosteriorBeta,
			AnalyticMean:   rec.AnalyticMean,
			SampleMean:     rec.SampleMean,
			AbsError:       rec.AbsError,
			Sampler:        rec.Sampler,
			CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		},
		Successes:   rec.Successes,
		Trials:      rec.Trials,
		PriorAlpha:  rec.PriorAlpha,
		PriorBeta:   rec.PriorBeta,
		Iterations:  rec.Iterations,
		BurnIn:      rec.BurnIn,
		Seed:        rec.Seed,
		Walk:        rec.Walk,
		GridSize:    rec.GridSize,
		SampleCount: len(rec.Samples),
	}

	// Pull the gate row for decision and the logged estimate record
	withLog, err := runStore.ListRunsWithLog(1000)
	if err == nil {
		for _, r := range withLog {
			if r.RunID == runID {
				out.Decision = r.Decision
				out.Reason = r.Reason
				out.Record = logging.ParseEstimateRecord(r.MetricsJSON)
				break
			}
		}
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:         %s\n", out.RunID)
	fmt.Printf("Created:     %s\n", out.CreatedAt)
	fmt.Printf("Prior:       Beta(%g, %g)\n", out.PriorAlpha, out.PriorBeta)
	fmt.Printf("Data:        %d successes of %d trials\n", out.Successes, out.Trials)
	fmt.Printf("Sampler:     %s (iters=%d burnin=%d seed=%d walk=%g)\n",
		out.Sampler, out.Iterations, out.BurnIn, out.Seed, out.Walk)
	fmt.Printf("Posterior:   Beta(%g, %g)\n", out.PosteriorAlpha, out.PosteriorBeta)
	fmt.Printf("Analytic:    %.6f\n", out.AnalyticMean)
	fmt.Printf("Sample mean: %.6f\n", out.SampleMean)
	fmt.Printf("Abs error:   %.6f\n", out.AbsError)
	fmt.Printf("Draws kept:  %d\n", out.SampleCount)
	if out.Decision != "" {
		fmt.Printf("Decision:    %s (%s)\n", out.Decision, out.Reason)
	}
	if out.Record != nil {
		fmt.Printf("\nEstimate Record:\n")
		fmt.Printf("  Soft Score:  %.2f\n", out.Record.GateSoftScore)
		fmt.Printf("  Eval Passed: %v\n", out.Record.EvalPassed)
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
