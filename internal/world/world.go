// Package world owns the entity containers for a run and answers spatial
// queries against them at arbitrary global times. A World is built once at
// engine initialization and treated as immutable for the rest of the run.
package world

import (
	"errors"
	"fmt"

	"github.com/astrogator/voyager/internal/entity"
)

// ErrDuplicateID is returned when two entities of the same kind share an id.
var ErrDuplicateID = errors.New("duplicate entity id")

// ErrNonPositiveRadius is returned when the universe radius is not positive.
var ErrNonPositiveRadius = errors.New("universe radius must be positive")

// World holds every entity in the universe plus the escape boundary.
type World struct {
	bodies    []*entity.Body
	wormholes []*entity.Wormhole
	artifacts []*entity.Artifact
	maxRadius float64

	maxBodyRadius float64
}

// New constructs a World, checking id uniqueness within each entity kind.
func New(bodies []*entity.Body, wormholes []*entity.Wormhole, artifacts []*entity.Artifact, maxRadius float64) (*World, error) {
	if maxRadius <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrNonPositiveRadius, maxRadius)
	}

	seen := make(map[uint32]bool, len(bodies))
	var maxBodyRadius float64
	for _, b := range bodies {
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: body %d", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = true
		if b.Radius > maxBodyRadius {
			maxBodyRadius = b.Radius
		}
	}

	seen = make(map[uint32]bool, len(wormholes))
	for _, w := range wormholes {
		if seen[w.ID] {
			return nil, fmt.Errorf("%w: wormhole %d", ErrDuplicateID, w.ID)
		}
		seen[w.ID] = true
	}

	seen = make(map[uint32]bool, len(artifacts))
	for _, a := range artifacts {
		if seen[a.ID] {
			return nil, fmt.Errorf("%w: artifact %d", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = true
	}

	return &World{
		bodies:        bodies,
		wormholes:     wormholes,
		artifacts:     artifacts,
		maxRadius:     maxRadius,
		maxBodyRadius: maxBodyRadius,
	}, nil
}

// Bodies returns all celestial bodies.
func (w *World) Bodies() []*entity.Body { return w.bodies }

// Wormholes returns all wormholes.
func (w *World) Wormholes() []*entity.Wormhole { return w.wormholes }

// Artifacts returns all artifacts.
func (w *World) Artifacts() []*entity.Artifact { return w.artifacts }

// Body returns the body with the given id, or nil.
func (w *World) Body(id uint32) *entity.Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Wormhole returns the wormhole with the given id, or nil.
func (w *World) Wormhole(id uint32) *entity.Wormhole {
	for _, wh := range w.wormholes {
		if wh.ID == id {
			return wh
		}
	}
	return nil
}

// Artifact returns the artifact with the given id, or nil.
func (w *World) Artifact(id uint32) *entity.Artifact {
	for _, a := range w.artifacts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// MaxRadius returns the universe escape boundary.
func (w *World) MaxRadius() float64 { return w.maxRadius }

// MaxBodyRadius returns the largest body radius, or 0 with no bodies.
// Collision queries use it to bound their search radius.
func (w *World) MaxBodyRadius() float64 { return w.maxBodyRadius }
