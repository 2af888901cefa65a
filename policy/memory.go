package policy

import "recsim/engine"

// Memory is the memory-based policy: it proposes randomly until the user's
// first purchase, then ranks not-yet-proposed items by their aggregate
// similarity to everything the user has bought this session.
type Memory struct{}

func (Memory) Name() string {
	return "memory"
}

func (Memory) NewSession(_ *engine.User, ctx *engine.SessionContext) engine.Session {
	return &memorySession{
		ctx:       ctx,
		proposed:  make(map[int]bool),
		purchased: make(map[int]bool),
	}
}

type memorySession struct {
	ctx       *engine.SessionContext
	proposed  map[int]bool
	purchased map[int]bool
}

func (s *memorySession) Propose() int {
	if len(s.purchased) == 0 {
		return s.randomDraw()
	}

	ranked := engine.RecommendBySimilarity(s.purchased, s.ctx.Similarity, len(s.ctx.Items))
	for _, idx := range ranked {
		if !s.proposed[idx] {
			return idx
		}
	}

	// every candidate already proposed this session
	return s.randomDraw()
}

func (s *memorySession) Observe(itemIndex int, purchased bool) {
	s.proposed[itemIndex] = true
	if purchased {
		s.purchased[itemIndex] = true
	}
}

func (s *memorySession) randomDraw() int {
	return s.ctx.RNG.IntRange(0, len(s.ctx.Items)-1)
}
