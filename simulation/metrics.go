package simulation

import (
	"recsim/engine"

	"gonum.org/v1/gonum/stat"
)

// PolicyMetrics aggregates one policy's inference batch against the known
// user population.
type PolicyMetrics struct {
	Policy string

	TotalPurchases      int
	PurchaseRate        float64
	PurchasedUsers      int
	AvgPurchasesPerUser float64

	// ColorBreakdown counts purchases per item color.
	ColorBreakdown map[engine.Color]int

	// Histogram[c] is the number of users with exactly c purchases,
	// c in [0, proposalsPerUser]. Users with zero purchases are counted,
	// so the histogram always sums to the user count.
	Histogram []int
}

// ComputeMetrics derives the aggregate counters for one policy's log batch.
// Every log entry is expected to reference a user and item in scope;
// proposalsPerUser bounds the per-user purchase count.
func ComputeMetrics(
	policyName string,
	logs []engine.LogEntry,
	users []engine.User,
	items []engine.Item,
	proposalsPerUser int,
) *PolicyMetrics {
	itemByID := make(map[string]*engine.Item, len(items))
	for i := range items {
		itemByID[items[i].ID] = &items[i]
	}

	perUser := make(map[string]int, len(users))
	colors := make(map[engine.Color]int)
	total := 0
	for _, entry := range logs {
		if !entry.Purchased {
			continue
		}
		total++
		perUser[entry.UserID]++
		if it, ok := itemByID[entry.ItemID]; ok {
			colors[it.Color]++
		}
	}

	histogram := make([]int, proposalsPerUser+1)
	counts := make([]float64, len(users))
	purchasedUsers := 0
	for i := range users {
		c := perUser[users[i].ID]
		counts[i] = float64(c)
		histogram[c]++
		if c > 0 {
			purchasedUsers++
		}
	}

	return &PolicyMetrics{
		Policy:              policyName,
		TotalPurchases:      total,
		PurchaseRate:        float64(total) / float64(len(users)*proposalsPerUser),
		PurchasedUsers:      purchasedUsers,
		AvgPurchasesPerUser: stat.Mean(counts, nil),
		ColorBreakdown:      colors,
		Histogram:           histogram,
	}
}
