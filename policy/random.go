package policy

import "recsim/engine"

// Random proposes a uniform random item on every step and carries no
// state between proposals. It is the baseline the learned policies are
// measured against.
type Random struct{}

func (Random) Name() string {
	return "random"
}

func (Random) NewSession(_ *engine.User, ctx *engine.SessionContext) engine.Session {
	return &randomSession{ctx: ctx}
}

type randomSession struct {
	engine.BaseSession
	ctx *engine.SessionContext
}

func (s *randomSession) Propose() int {
	return s.ctx.RNG.IntRange(0, len(s.ctx.Items)-1)
}
