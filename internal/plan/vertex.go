package plan

import (
	"github.com/astrogator/voyager/internal/mat"
)

// StateVertex is one node of the planning graph: the continuous spacecraft
// state (position, velocity, global time, fuel) plus the discrete set of
// collected artifact ids. Vertices are immutable; successors are freshly
// constructed, never mutated in place.
type StateVertex struct {
	X         mat.Matrix
	V         mat.Matrix
	TU        float64
	Fuel      float64
	Collected ArtifactSet
}

// NewStateVertex constructs a vertex with an empty collected set when none
// is given.
func NewStateVertex(x, v mat.Matrix, tU, fuel float64, collected ArtifactSet) StateVertex {
	if collected == nil {
		collected = NewArtifactSet()
	}
	return StateVertex{X: x, V: v, TU: tU, Fuel: fuel, Collected: collected}
}

// Valid reports whether the vertex satisfies the state invariants: 2x1
// spatial vectors, non-negative fuel, and global time within the horizon.
func (s StateVertex) Valid(tMax float64) bool {
	return s.X.IsVec2() && s.V.IsVec2() && s.Fuel >= 0 && s.TU <= tMax
}
