package engine

import "gonum.org/v1/gonum/floats"

// FactorizationModel holds the learned latent factors. Row i of each
// matrix belongs to the i-th entity of the index ordering supplied at
// training time. After training the model is treated as read-only;
// per-user online adaptation works on private copies only.
type FactorizationModel struct {
	UserFactors [][]float64
	ItemFactors [][]float64
	K           int

	UserIndex map[string]int
	ItemIndex map[string]int

	// SkippedLogs counts training entries referencing unknown identities.
	// Such entries are tolerated as no-ops; a nonzero count signals a
	// data-quality problem upstream.
	SkippedLogs int
}

// RandomVector draws a length-k vector with each component
// (rng() - 0.5) * 0.1, the small symmetric initialization used for every
// embedding row and for per-session private vectors.
func RandomVector(rng *RNG, k int) []float64 {
	v := make([]float64, k)
	for d := range v {
		v[d] = (rng.Float64() - 0.5) * 0.1
	}
	return v
}

// TrainMF learns user and item embeddings from implicit-feedback logs via
// SGD. Entries are visited in their original order within each epoch, with
// no shuffling; that ordering is part of the reproducibility contract.
// The label is 1 for a purchase and 0 otherwise; both rows of a visited
// pair receive a simultaneous regularized step computed from their
// pre-update values.
//
// Embeddings stay bounded under the default hyperparameters for the data
// scales this engine generates; no clipping is applied, so runaway growth
// under misconfigured rates is the caller's responsibility.
func TrainMF(
	rng *RNG,
	users []User,
	items []Item,
	logs []LogEntry,
	epochs int,
	k int,
	learnRate float64,
	regularization float64,
) *FactorizationModel {
	m := &FactorizationModel{
		UserFactors: make([][]float64, len(users)),
		ItemFactors: make([][]float64, len(items)),
		K:           k,
		UserIndex:   make(map[string]int, len(users)),
		ItemIndex:   make(map[string]int, len(items)),
	}
	for i, u := range users {
		m.UserIndex[u.ID] = i
		m.UserFactors[i] = RandomVector(rng, k)
	}
	for i, it := range items {
		m.ItemIndex[it.ID] = i
		m.ItemFactors[i] = RandomVector(rng, k)
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for _, entry := range logs {
			ui, ok := m.UserIndex[entry.UserID]
			if !ok {
				if epoch == 0 {
					m.SkippedLogs++
				}
				continue
			}
			ii, ok := m.ItemIndex[entry.ItemID]
			if !ok {
				if epoch == 0 {
					m.SkippedLogs++
				}
				continue
			}

			uRow := m.UserFactors[ui]
			iRow := m.ItemFactors[ii]

			label := 0.0
			if entry.Purchased {
				label = 1.0
			}
			residual := label - floats.Dot(uRow, iRow)

			for d := 0; d < k; d++ {
				uv := uRow[d]
				iv := iRow[d]
				uRow[d] += learnRate * (residual*iv - regularization*uv)
				iRow[d] += learnRate * (residual*uv - regularization*iv)
			}
		}
	}

	return m
}

// ScoreItems projects a user vector against every item row and returns
// the dot products in item-row order. Pure; neither input is modified.
func ScoreItems(userVec []float64, m *FactorizationModel) []float64 {
	scores := make([]float64, len(m.ItemFactors))
	for i, row := range m.ItemFactors {
		scores[i] = floats.Dot(userVec, row)
	}
	return scores
}

// AdaptUserOnline returns a new vector obtained by running steps SGD
// updates on a copy of userVec against the single (item, label) pair,
// holding the item row fixed. The input vector and the shared model are
// never mutated, so per-user sessions stay isolated.
func AdaptUserOnline(
	userVec []float64,
	m *FactorizationModel,
	itemIndex int,
	purchased bool,
	steps int,
	learnRate float64,
	regularization float64,
) []float64 {
	v := make([]float64, len(userVec))
	copy(v, userVec)

	iRow := m.ItemFactors[itemIndex]
	label := 0.0
	if purchased {
		label = 1.0
	}

	for s := 0; s < steps; s++ {
		residual := label - floats.Dot(v, iRow)
		for d := range v {
			v[d] += learnRate * (residual*iRow[d] - regularization*v[d])
		}
	}

	return v
}
