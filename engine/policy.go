package engine

import "gonum.org/v1/gonum/mat"

// SessionContext carries the shared read-only inputs one inference pass
// hands to every policy session: the catalog, the trained factorization
// model, the item similarity matrix, and the single ordered RNG stream.
// Sessions read the model and similarity matrix but never write them.
type SessionContext struct {
	RNG        *RNG
	Items      []Item
	Model      *FactorizationModel
	Similarity *mat.SymDense
}

// Policy is one recommendation strategy. A policy is stateless; all
// per-user state lives in the Session it creates, so user sessions are
// mutually independent.
type Policy interface {
	// Name is the stable identifier used in logs, metrics and persistence.
	Name() string

	// NewSession starts a fresh proposal session for one user.
	NewSession(user *User, ctx *SessionContext) Session
}

// Session is one user's proposal loop state for one policy.
type Session interface {
	// Propose returns the catalog index of the next item to offer.
	Propose() int

	// Observe reports the purchase outcome of a proposed item.
	Observe(itemIndex int, purchased bool)
}

// BaseSession provides a no-op Observe for sessions that carry no state
// between proposals.
type BaseSession struct{}

func (BaseSession) Observe(int, bool) {}
