package simulation

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Experiment runs TrialCount independent trials of one scenario, each with
// a derived seed, and compares the learned policies against the random
// baseline across trials.
type Experiment struct {
	dir      string
	metadata *ScenarioMetadata
}

// ExperimentReport summarizes an experiment.
type ExperimentReport struct {
	Series *TrialSeries

	// MeanRate is each policy's purchase rate averaged over trials.
	MeanRate map[string]float64

	// WinsOverRandom counts, per learned policy, the trials in which its
	// purchase rate strictly exceeded the random baseline's.
	WinsOverRandom map[string]int
}

func NewExperiment(dir string, metadata *ScenarioMetadata) *Experiment {
	return &Experiment{dir: dir, metadata: metadata}
}

// Run executes all trials and aggregates their purchase rates. Trials are
// mutually independent (each owns its populations, model and similarity
// matrix), so they run concurrently; per-trial results land in a fixed
// slot, keeping the aggregate deterministic.
func (e *Experiment) Run() (*ExperimentReport, error) {
	md := e.metadata
	if err := md.Validate(); err != nil {
		return nil, err
	}

	trials := md.TrialCount
	perTrial := make([][]InferenceResult, trials)
	errs := make([]error, trials)

	var wg sync.WaitGroup
	for t := 0; t < trials; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()

			trialMD := *md
			trialMD.Seed = md.Seed + int64(t)*seedStrideTrial
			trialMD.UniqueName = fmt.Sprintf("%s-trial-%d", md.UniqueName, t)

			sc := NewScenario(e.dir, &trialMD)
			sc.ShowProgress = trials == 1
			perTrial[t], errs[t] = sc.Run()
		}(t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	series := &TrialSeries{Rates: make([][]float64, trials)}
	for _, r := range perTrial[0] {
		series.Policies = append(series.Policies, r.Policy)
	}
	for t, results := range perTrial {
		row := make([]float64, len(results))
		for i, r := range results {
			row[i] = r.Metrics.PurchaseRate
		}
		series.Rates[t] = row
	}

	report := &ExperimentReport{
		Series:         series,
		MeanRate:       make(map[string]float64),
		WinsOverRandom: make(map[string]int),
	}

	baseline := -1
	for i, name := range series.Policies {
		if name == "random" {
			baseline = i
		}
		col := make([]float64, trials)
		for t := range series.Rates {
			col[t] = series.Rates[t][i]
		}
		report.MeanRate[name] = stat.Mean(col, nil)
	}
	if baseline >= 0 {
		for i, name := range series.Policies {
			if i == baseline {
				continue
			}
			for t := range series.Rates {
				if series.Rates[t][i] > series.Rates[t][baseline] {
					report.WinsOverRandom[name]++
				}
			}
		}
	}

	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0755); err != nil {
			return nil, err
		}
		path := filepath.Join(e.dir, md.UniqueName+"-trials.lz4")
		if err := SaveTrialSeries(path, series); err != nil {
			return nil, err
		}
	}

	return report, nil
}
