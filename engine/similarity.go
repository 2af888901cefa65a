package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// BuildItemSimilarity computes the item-item cosine similarity matrix from
// co-purchase statistics. For each user the set of purchased item indices
// is built from entries marked purchased; every ordered pair of distinct
// items jointly purchased by one user increments a symmetric co-occurrence
// count, and each purchase increments the item's own count. Similarity is
//
//	cooc(i,j) / (sqrt(count(i)) * sqrt(count(j)))
//
// when both counts are positive, else 0. The diagonal is 0 by construction
// and every entry lies in [0,1]: over 0/1 incidence vectors the pair
// co-occurrence never exceeds the smaller individual count.
func BuildItemSimilarity(items []Item, logs []LogEntry) *mat.SymDense {
	n := len(items)

	itemIndex := make(map[string]int, n)
	for i, it := range items {
		itemIndex[it.ID] = i
	}

	purchasedBy := make(map[string]map[int]bool)
	for _, entry := range logs {
		if !entry.Purchased {
			continue
		}
		idx, ok := itemIndex[entry.ItemID]
		if !ok {
			continue
		}
		set := purchasedBy[entry.UserID]
		if set == nil {
			set = make(map[int]bool)
			purchasedBy[entry.UserID] = set
		}
		set[idx] = true
	}

	counts := make([]float64, n)
	cooc := make([][]float64, n)
	for i := range cooc {
		cooc[i] = make([]float64, n)
	}
	for _, set := range purchasedBy {
		for i := range set {
			counts[i]++
			for j := range set {
				if i != j {
					cooc[i][j]++
				}
			}
		}
	}

	sim := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if counts[i] > 0 && counts[j] > 0 {
				sim.SetSym(i, j, cooc[i][j]/(math.Sqrt(counts[i])*math.Sqrt(counts[j])))
			}
		}
	}
	return sim
}

// RecommendBySimilarity ranks every item not in the purchased set by its
// aggregate similarity to the purchased items, highest first. Items with
// zero aggregate score are included. Equal scores break ties by ascending
// item index, and each aggregate accumulates over the purchased indices in
// ascending order; float64 addition is not associative, so a fixed
// summation order is required for the ranking to be deterministic.
func RecommendBySimilarity(purchased map[int]bool, sim *mat.SymDense, itemCount int) []int {
	owned := make([]int, 0, len(purchased))
	for j := range purchased {
		owned = append(owned, j)
	}
	sort.Ints(owned)

	candidates := make([]int, 0, itemCount)
	scores := make([]float64, itemCount)
	for i := 0; i < itemCount; i++ {
		if purchased[i] {
			continue
		}
		for _, j := range owned {
			scores[i] += sim.At(i, j)
		}
		candidates = append(candidates, i)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})
	return candidates
}
