package simulation

import (
	"log"
	"os"
	"path/filepath"

	"recsim/engine"

	"github.com/schollz/progressbar/v3"
)

// Scenario owns one end-to-end run: synthetic generation, training-log
// simulation, model and similarity training, and the three-policy
// inference pass. The engine itself performs no I/O; all persistence and
// progress reporting lives here.
type Scenario struct {
	dir      string
	metadata *ScenarioMetadata

	// ShowProgress enables the inference progress bar. The experiment
	// runner turns it off when trials run concurrently.
	ShowProgress bool
}

// Phase seed offsets. Each phase derives its own generator from the run
// seed so the phases' streams stay independent of each other's draw
// counts; the offsets are fixed and part of the reproducibility contract.
const (
	seedOffsetTrainUsers = 1
	seedOffsetTrainLogs  = 2
	seedOffsetModelInit  = 3
	seedOffsetInference  = 4
	seedOffsetInferUsers = 5
)

// Trial t of an experiment shifts the run seed by t * seedStrideTrial.
const seedStrideTrial = 1000

func NewScenario(dir string, metadata *ScenarioMetadata) *Scenario {
	return &Scenario{
		dir:          dir,
		metadata:     metadata,
		ShowProgress: true,
	}
}

// Run executes the full pipeline and returns the per-policy results.
// Training and inference populations are generated separately and never
// share identities. When the scenario has a base directory, logs and
// metrics are also stored in its SQLite database.
func (s *Scenario) Run() ([]InferenceResult, error) {
	md := s.metadata
	if err := md.Validate(); err != nil {
		return nil, err
	}

	items := engine.GenerateItems()

	trainUsers := engine.GenerateUsers(
		engine.NewRNG(md.Seed+seedOffsetTrainUsers), md.TrainUserCount, "train-")
	trainLogs := engine.GenerateTrainLogs(
		engine.NewRNG(md.Seed+seedOffsetTrainLogs),
		trainUsers, items, md.PurchaseThreshold, md.ProposalsPerUser)

	model := engine.TrainMF(
		engine.NewRNG(md.Seed+seedOffsetModelInit),
		trainUsers, items, trainLogs,
		md.TrainingEpochs, md.LatentDim, md.LearnRate, md.Regularization)
	if model.SkippedLogs > 0 {
		log.Printf("training skipped %d log entries with unknown identities", model.SkippedLogs)
	}

	similarity := engine.BuildItemSimilarity(items, trainLogs)

	inferUsers := engine.GenerateUsers(
		engine.NewRNG(md.Seed+seedOffsetInferUsers), md.InferUserCount, "infer-")

	policies := md.BuildPolicies()

	var onUser func()
	if s.ShowProgress {
		bar := progressbar.Default(int64(len(policies) * md.InferUserCount))
		onUser = func() { bar.Add(1) }
	}

	results := RunInference(
		engine.NewRNG(md.Seed+seedOffsetInference),
		inferUsers, items, md.PurchaseThreshold,
		model, similarity, policies, md.ProposalsPerUser, onUser)

	if s.dir != "" {
		if err := s.persist(results); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (s *Scenario) persist(results []InferenceResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	db, err := OpenLogDB(filepath.Join(s.dir, s.metadata.UniqueName+".db"))
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.StoreRun(s.metadata, results)
	return err
}
