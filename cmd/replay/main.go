package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/posterior-lab/internal/logging"
	"github.com/danielpatrickdp/posterior-lab/internal/replay"
	"github.com/danielpatrickdp/posterior-lab/internal/store"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "replay cases from a JSON fixture file")
	dbPath := flag.String("db", "", "replay committed runs recorded in this SQLite file")
	last := flag.Int("last", 50, "with --db, replay the N most recent runs")
	maxAbsErr := flag.Float64("max-abs-error", 0.02, "with --db, abs-error bound applied to rebuilt cases")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if (*fixturePath == "") == (*dbPath == "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture cases.json | --db path/to/posterior_lab.db [--last N]")
		os.Exit(2)
	}

	var (
		f   *replay.Fixture
		err error
	)
	if *fixturePath != "" {
		f, err = replay.LoadFixture(*fixturePath)
	} else {
		f, err = fixtureFromStore(*dbPath, *last, *maxAbsErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, sum := replay.Replay(f)
	if err := printResults(f.Description, results, sum, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "output: %v\n", err)
		os.Exit(1)
	}
	if sum.Failed > 0 {
		os.Exit(1)
	}
}

// #endregion main

// #region db-source

// fixtureFromStore rebuilds replay cases from the gate log rows of stored
// runs. Rows without a parseable estimate record are skipped.
func fixtureFromStore(dbPath string, last int, maxAbsErr float64) (*replay.Fixture, error) {
	runStore, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer runStore.Close()

	runs, err := runStore.ListRunsWithLog(last)
	if err != nil {
		return nil, err
	}

	f := &replay.Fixture{Description: fmt.Sprintf("runs from %s", dbPath)}
	for _, r := range runs {
		er := logging.ParseEstimateRecord(r.MetricsJSON)
		if er == nil {
			continue
		}
		if r.Decision != "commit" || !er.EvalPassed {
			continue
		}
		f.Cases = append(f.Cases, replay.CaseFromRecord(*er, maxAbsErr))
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("no replayable committed runs in %s", dbPath)
	}
	return f, nil
}

// #endregion db-source

// #region output

type caseRow struct {
	Name         string  `json:"name"`
	Passed       bool    `json:"passed"`
	Action       string  `json:"action"`
	AnalyticMean float64 `json:"analytic_mean"`
	SampleMean   float64 `json:"sample_mean"`
	Reason       string  `json:"reason"`
}

type report struct {
	Description string    `json:"description,omitempty"`
	Total       int       `json:"total"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Cases       []caseRow `json:"cases"`
}

func printResults(desc string, results []replay.CaseResult, sum replay.Summary, jsonOut bool) error {
	rep := report{
		Description: desc,
		Total:       sum.Total,
		Passed:      sum.Passed,
		Failed:      sum.Failed,
	}
	for _, r := range results {
		rep.Cases = append(rep.Cases, caseRow{
			Name:         r.Name,
			Passed:       r.Passed,
			Action:       r.Action,
			AnalyticMean: r.AnalyticMean,
			SampleMean:   r.SampleMean,
			Reason:       r.Reason,
		})
	}

	if jsonOut {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if desc != "" {
		fmt.Printf("Fixture: %s\n\n", desc)
	}
	fmt.Printf("%-24s  %-6s  %-12s  %10s  %10s  %s\n",
		"Case", "Status", "Action", "Analytic", "Sample", "Reason")
	for _, c := range rep.Cases {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Printf("%-24s  %-6s  %-12s  %10.6f  %10.6f  %s\n",
			truncate(c.Name, 24), status, c.Action, c.AnalyticMean, c.SampleMean, c.Reason)
	}
	fmt.Printf("\n%d cases: %d passed, %d failed\n", rep.Total, rep.Passed, rep.Failed)
	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// #endregion output
