package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/posterior-lab/internal/logging"
	"github.com/danielpatrickdp/posterior-lab/internal/replay"
	"github.com/danielpatrickdp/posterior-lab/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to posterior_lab.db")
	outPath := flag.String("out", "", "write the fixture JSON to this file")
	runID := flag.String("run", "", "export a single run")
	last := flag.Int("last", 50, "export the N most recent runs")
	maxAbsErr := flag.Float64("max-abs-error", 0.02, "abs-error bound recorded in each case")
	desc := flag.String("desc", "", "fixture description (defaults to the db path)")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/posterior_lab.db --out cases.json [--run id | --last N]")
		os.Exit(2)
	}

	runStore, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer runStore.Close()

	f, err := buildFixture(runStore, *runID, *last, *maxAbsErr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *desc != "" {
		f.Description = *desc
	} else {
		f.Description = fmt.Sprintf("exported from %s", *dbPath)
	}

	if err := replay.WriteFixture(*outPath, f); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cases to %s\n", len(f.Cases), *outPath)
}

// #endregion main

// #region export

// buildFixture converts the gate log rows of stored runs into replay
// cases. Only committed runs with a parseable estimate record export.
func buildFixture(runStore *store.Store, runID string, last int, maxAbsErr float64) (*replay.Fixture, error) {
	limit := last
	if runID != "" {
		limit = 1000
	}
	runs, err := runStore.ListRunsWithLog(limit)
	if err != nil {
		return nil, err
	}

	f := &replay.Fixture{}
	for _, r := range runs {
		if runID != "" && r.RunID != runID {
			continue
		}
		if r.Decision != "commit" {
			continue
		}
		er := logging.ParseEstimateRecord(r.MetricsJSON)
		if er == nil || !er.EvalPassed {
			continue
		}
		f.Cases = append(f.Cases, replay.CaseFromRecord(*er, maxAbsErr))
	}

	if len(f.Cases) == 0 {
		if runID != "" {
			return nil, fmt.Errorf("run %s not found or not exportable", runID)
		}
		return nil, fmt.Errorf("no exportable committed runs")
	}
	return f, nil
}

// #endregion export
