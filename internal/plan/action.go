package plan

import (
	"errors"

	"github.com/astrogator/voyager/internal/mat"
)

// ErrInvalidAction is returned when an action of the wrong kind is handed
// to a model's Apply. It indicates a bug in the caller — the solver only
// applies actions the same model enumerated — and never escapes a search.
var ErrInvalidAction = errors.New("action is not of the expected kind")

// Action is one edge label of the planning graph. Cost is the edge cost
// accumulated into a path's total.
type Action interface {
	Cost() float64
}

// ThrustAction fires the engine at a fixed level along a fixed unit
// direction for one global-time step. A level of zero is a coast.
type ThrustAction struct {
	Level     float64
	Direction mat.Matrix // unit 2x1 vector
	DtGlobal  float64
}

// Cost is the action's global-time duration.
func (a ThrustAction) Cost() float64 { return a.DtGlobal }

// ActionModel expands a state into a finite action fan-out and applies a
// chosen action. Apply returns (nil, nil) when the successor is infeasible
// (collision, horizon, escape, broken invariant) — such edges silently
// prune the search tree. A non-nil error is reserved for contract
// violations like a foreign action kind.
type ActionModel interface {
	Enumerate(from StateVertex) []Action
	Apply(from StateVertex, a Action) (*StateVertex, error)
}
