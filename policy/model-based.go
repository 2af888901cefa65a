package policy

import (
	"recsim/engine"
	"recsim/utils"
)

// ModelBased is the model-based policy. Each session owns a private
// embedding vector drawn with the training initialization scheme; the
// shared factorization model is read but never written. The first
// proposal is a uniform draw, later proposals take the highest-scoring
// item not yet offered, and after every observed outcome the private
// vector is adapted online - a "no purchase" is as informative as a
// purchase, pushing the vector away from that item.
type ModelBased struct {
	OnlineSteps    int
	LearnRate      float64
	Regularization float64
}

func (ModelBased) Name() string {
	return "model"
}

func (p ModelBased) NewSession(_ *engine.User, ctx *engine.SessionContext) engine.Session {
	return &modelSession{
		policy:   p,
		ctx:      ctx,
		vec:      engine.RandomVector(ctx.RNG, ctx.Model.K),
		proposed: make(map[int]bool),
		topK:     utils.NewTopKFinder(len(ctx.Items)),
	}
}

type modelSession struct {
	policy   ModelBased
	ctx      *engine.SessionContext
	vec      []float64
	proposed map[int]bool
	observed int
	topK     *utils.TopKFinder
}

func (s *modelSession) Propose() int {
	if s.observed == 0 {
		return s.ctx.RNG.IntRange(0, len(s.ctx.Items)-1)
	}

	scores := engine.ScoreItems(s.vec, s.ctx.Model)

	// the top len(proposed)+1 scored items always contain an unproposed one
	ranked := s.topK.FindTopK(scores, len(s.proposed)+1)
	s.topK.SortIndices(scores)
	for _, idx := range ranked {
		if !s.proposed[idx] {
			return idx
		}
	}

	return s.ctx.RNG.IntRange(0, len(s.ctx.Items)-1)
}

func (s *modelSession) Observe(itemIndex int, purchased bool) {
	s.proposed[itemIndex] = true
	s.observed++
	s.vec = engine.AdaptUserOnline(
		s.vec, s.ctx.Model, itemIndex, purchased,
		s.policy.OnlineSteps, s.policy.LearnRate, s.policy.Regularization,
	)
}
