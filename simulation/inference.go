package simulation

import (
	"recsim/engine"

	"gonum.org/v1/gonum/mat"
)

// InferenceResult is one policy's full output over the inference
// population: its interaction logs and the metrics derived from them.
type InferenceResult struct {
	Policy  string
	Logs    []engine.LogEntry
	Metrics *PolicyMetrics
}

// RunInference evaluates each policy over the same user population,
// sequentially: for every user a fresh session performs exactly
// proposalsPerUser proposals at positions 0..proposalsPerUser-1, each
// decided by the ground-truth purchase rule and reported back to the
// session. The trained model and similarity matrix are shared read-only
// inputs; all mutable state is per session. Policies consume the single
// RNG stream in order, so a rerun with the same stream reproduces the
// logs bit for bit.
//
// onUser, when non-nil, is called once per completed (policy, user) pair;
// the scenario uses it to drive a progress bar.
func RunInference(
	rng *engine.RNG,
	users []engine.User,
	items []engine.Item,
	threshold int,
	model *engine.FactorizationModel,
	similarity *mat.SymDense,
	policies []engine.Policy,
	proposalsPerUser int,
	onUser func(),
) []InferenceResult {
	ctx := &engine.SessionContext{
		RNG:        rng,
		Items:      items,
		Model:      model,
		Similarity: similarity,
	}

	results := make([]InferenceResult, 0, len(policies))
	for _, p := range policies {
		logs := make([]engine.LogEntry, 0, len(users)*proposalsPerUser)

		for ui := range users {
			user := &users[ui]
			session := p.NewSession(user, ctx)

			for pos := 0; pos < proposalsPerUser; pos++ {
				idx := session.Propose()
				item := &items[idx]
				purchased := engine.ShouldPurchase(user, item, threshold)
				logs = append(logs, engine.LogEntry{
					UserID:    user.ID,
					ItemID:    item.ID,
					Position:  pos,
					Purchased: purchased,
				})
				session.Observe(idx, purchased)
			}

			if onUser != nil {
				onUser()
			}
		}

		results = append(results, InferenceResult{
			Policy:  p.Name(),
			Logs:    logs,
			Metrics: ComputeMetrics(p.Name(), logs, users, items, proposalsPerUser),
		})
	}
	return results
}
