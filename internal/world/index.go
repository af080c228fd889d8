package world

import (
	"github.com/astrogator/voyager/internal/entity"
	"github.com/astrogator/voyager/internal/mat"
)

// Index answers radius queries against the world at a given global time.
// Every entity whose position at tU lies within r of x (Euclidean,
// inclusive) is returned, in the world's insertion order. Body positions
// are evaluated at tU; wormhole entries and artifacts are static.
type Index interface {
	QueryBodies(x mat.Matrix, r, tU float64) []*entity.Body
	QueryWormholes(x mat.Matrix, r, tU float64) []*entity.Wormhole
	QueryArtifacts(x mat.Matrix, r, tU float64) []*entity.Artifact
}

// LinearIndex is the reference Index: a linear scan over the world's
// entities. Worlds are small enough that nothing fancier has paid off;
// a grid or R-tree may replace it as long as results match on ties.
type LinearIndex struct {
	world *World
}

// NewLinearIndex creates an index over w.
func NewLinearIndex(w *World) *LinearIndex {
	return &LinearIndex{world: w}
}

// QueryBodies returns the bodies within r of x at time tU.
func (idx *LinearIndex) QueryBodies(x mat.Matrix, r, tU float64) []*entity.Body {
	var result []*entity.Body
	for _, b := range idx.world.Bodies() {
		if mat.Norm(b.Pos(tU).Sub(x)) <= r {
			result = append(result, b)
		}
	}
	return result
}

// QueryWormholes returns the wormholes whose entry lies within r of x.
func (idx *LinearIndex) QueryWormholes(x mat.Matrix, r, tU float64) []*entity.Wormhole {
	var result []*entity.Wormhole
	for _, w := range idx.world.Wormholes() {
		if mat.Norm(w.Entry.Sub(x)) <= r {
			result = append(result, w)
		}
	}
	return result
}

// QueryArtifacts returns the artifacts within r of x.
func (idx *LinearIndex) QueryArtifacts(x mat.Matrix, r, tU float64) []*entity.Artifact {
	var result []*entity.Artifact
	for _, a := range idx.world.Artifacts() {
		if mat.Norm(a.Position.Sub(x)) <= r {
			result = append(result, a)
		}
	}
	return result
}
