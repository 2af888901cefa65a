package engine

import (
	"math"
	"testing"
)

func trainFixture(seed int64, epochs int) (*FactorizationModel, []User, []Item, []LogEntry) {
	items := GenerateItems()
	users := GenerateUsers(NewRNG(seed+1), 100, "u-")
	logs := GenerateTrainLogs(NewRNG(seed+2), users, items, 160, 10)
	model := TrainMF(NewRNG(seed+3), users, items, logs, epochs, 8, 0.01, 0.01)
	return model, users, items, logs
}

func reconstructionMSE(m *FactorizationModel, logs []LogEntry) float64 {
	sum, n := 0.0, 0
	for _, entry := range logs {
		ui, ok := m.UserIndex[entry.UserID]
		if !ok {
			continue
		}
		ii, ok := m.ItemIndex[entry.ItemID]
		if !ok {
			continue
		}
		label := 0.0
		if entry.Purchased {
			label = 1.0
		}
		pred := 0.0
		for d := 0; d < m.K; d++ {
			pred += m.UserFactors[ui][d] * m.ItemFactors[ii][d]
		}
		sum += (label - pred) * (label - pred)
		n++
	}
	return sum / float64(n)
}

func TestTrainMFReproducible(t *testing.T) {
	a, _, _, _ := trainFixture(42, 10)
	b, _, _, _ := trainFixture(42, 10)
	for i := range a.UserFactors {
		if !CompareSlices(a.UserFactors[i], b.UserFactors[i]) {
			t.Fatalf("user row %d differs between same-seed trainings", i)
		}
	}
	for i := range a.ItemFactors {
		if !CompareSlices(a.ItemFactors[i], b.ItemFactors[i]) {
			t.Fatalf("item row %d differs between same-seed trainings", i)
		}
	}
}

func TestTrainMFDimensionsAndBounds(t *testing.T) {
	model, users, items, _ := trainFixture(42, 30)
	if len(model.UserFactors) != len(users) || len(model.ItemFactors) != len(items) {
		t.Fatalf("row counts %d/%d, want %d/%d",
			len(model.UserFactors), len(model.ItemFactors), len(users), len(items))
	}
	for _, rows := range [][][]float64{model.UserFactors, model.ItemFactors} {
		for i, row := range rows {
			if len(row) != model.K {
				t.Fatalf("row %d has dimension %d, want %d", i, len(row), model.K)
			}
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 10 {
					t.Fatalf("row %d has unbounded component %v", i, v)
				}
			}
		}
	}
	if model.SkippedLogs != 0 {
		t.Errorf("well-formed logs reported %d skips", model.SkippedLogs)
	}
}

func TestTrainMFMoreEpochsReduceError(t *testing.T) {
	improved := 0
	seeds := []int64{1, 2, 3, 4, 5}
	for _, seed := range seeds {
		short, _, _, logs := trainFixture(seed, 3)
		long, _, _, _ := trainFixture(seed, 30)
		if reconstructionMSE(long, logs) < reconstructionMSE(short, logs) {
			improved++
		}
	}
	if improved < 4 {
		t.Errorf("longer training reduced MSE on only %d/%d replicate seeds", improved, len(seeds))
	}
}

func TestTrainMFSkipsUnknownIdentities(t *testing.T) {
	items := GenerateItems()
	users := GenerateUsers(NewRNG(1), 10, "u-")
	logs := GenerateTrainLogs(NewRNG(2), users, items, 160, 10)
	logs = append(logs,
		LogEntry{UserID: "ghost", ItemID: items[0].ID, Position: 0, Purchased: true},
		LogEntry{UserID: users[0].ID, ItemID: "ghost-item", Position: 1, Purchased: false},
	)

	model := TrainMF(NewRNG(3), users, items, logs, 5, 4, 0.01, 0.01)
	if model.SkippedLogs != 2 {
		t.Errorf("SkippedLogs = %d, want 2", model.SkippedLogs)
	}
}

func TestScoreItemsIsPureProjection(t *testing.T) {
	model, _, items, _ := trainFixture(42, 10)
	vec := RandomVector(NewRNG(9), model.K)
	before := make([]float64, model.K)
	copy(before, vec)

	scores := ScoreItems(vec, model)
	if len(scores) != len(items) {
		t.Fatalf("got %d scores, want %d", len(scores), len(items))
	}
	if !CompareSlices(vec, before) {
		t.Errorf("ScoreItems mutated the user vector")
	}

	again := ScoreItems(vec, model)
	if !CompareSlices(scores, again) {
		t.Errorf("repeated scoring differs")
	}
}

func TestAdaptUserOnline(t *testing.T) {
	model, _, _, _ := trainFixture(42, 10)
	vec := RandomVector(NewRNG(9), model.K)
	before := make([]float64, model.K)
	copy(before, vec)

	adapted := AdaptUserOnline(vec, model, 3, true, 5, 0.1, 0.01)

	if !CompareSlices(vec, before) {
		t.Fatalf("AdaptUserOnline mutated its input vector")
	}

	scoreBefore := ScoreItems(vec, model)[3]
	scoreAfter := ScoreItems(adapted, model)[3]
	if scoreAfter <= scoreBefore {
		t.Errorf("purchase adaptation must raise the item score: %v -> %v", scoreBefore, scoreAfter)
	}

	pushed := AdaptUserOnline(vec, model, 3, false, 5, 0.1, 0.01)
	scorePushed := ScoreItems(pushed, model)[3]
	if scorePushed >= scoreBefore && scoreBefore > 0 {
		t.Errorf("no-purchase adaptation must lower a positive item score: %v -> %v", scoreBefore, scorePushed)
	}
}
