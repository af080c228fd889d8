// Package engine is the orchestrator façade over the planning core. New
// builds every component from a Config; Compute runs the search; Step
// dispenses one WorldFrame per path element; Shutdown releases the run.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/astrogator/voyager/internal/entity"
	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/physics"
	"github.com/astrogator/voyager/internal/plan"
	"github.com/astrogator/voyager/internal/timeflow"
	"github.com/astrogator/voyager/internal/world"
)

// ErrNoPath is returned by Compute when the search exhausts without
// reaching the goal.
var ErrNoPath = errors.New("no feasible path under the horizon")

// ErrNotComputed is returned by Step before a successful Compute.
var ErrNotComputed = errors.New("run has not been computed")

// ErrRunComplete is returned by Step after the last path element.
var ErrRunComplete = errors.New("run already dispensed its final frame")

// Engine owns all run components. It is single-threaded: Compute runs to
// completion before Step is first called, and nothing is mutated after
// construction except the step cursor and the stored result.
type Engine struct {
	cfg    Config
	world  *world.World
	index  world.Index
	env    physics.Environment
	policy timeflow.Policy
	craft  *entity.Spacecraft
	solver *plan.Solver

	result      *plan.Result
	properTimes []float64
	cursor      int
}

// New validates cfg and constructs every component. All construction
// errors are fatal and surfaced here; a returned Engine is ready to
// Compute.
func New(cfg Config) (*Engine, error) {
	w, err := buildWorld(cfg.World)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	craft, err := entity.NewSpacecraft(
		cfg.Spacecraft.Mass,
		cfg.Spacecraft.MaxFuel,
		0,
		cfg.Spacecraft.ThrustLevels,
		cfg.Spacecraft.ExhaustSpeed,
		cfg.Spacecraft.Directions,
	)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	env := physics.NewNewtonian(w)
	idx := world.NewLinearIndex(w)
	policy := timeflow.NewRectangle(env, cfg.Time.TMaxU, cfg.Time.DtU)

	quantizer := plan.Quantizer{
		PosBin:  cfg.Quantization.PosBin,
		VelBin:  cfg.Quantization.VelBin,
		TimeBin: cfg.Quantization.TimeBin,
		FuelBin: cfg.Quantization.FuelBin,
	}
	thrust := plan.NewThrustModel(env, policy, idx, w, craft, cfg.CaptureRadius)
	solver := plan.NewSolver(quantizer, nil, thrust)

	return &Engine{
		cfg:    cfg,
		world:  w,
		index:  idx,
		env:    env,
		policy: policy,
		craft:  craft,
		solver: solver,
	}, nil
}

func buildWorld(cfg WorldConfig) (*world.World, error) {
	bodies := make([]*entity.Body, 0, len(cfg.Bodies))
	for _, bc := range cfg.Bodies {
		b, err := buildBody(bc)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}

	wormholes := make([]*entity.Wormhole, 0, len(cfg.Wormholes))
	for _, wc := range cfg.Wormholes {
		entry, err := vec2(wc.Entry, "wormhole entry")
		if err != nil {
			return nil, err
		}
		exit, err := vec2(wc.Exit, "wormhole exit")
		if err != nil {
			return nil, err
		}
		wh, err := entity.NewWormhole(wc.ID, entry, exit, wc.TOpen, wc.TClose)
		if err != nil {
			return nil, err
		}
		wormholes = append(wormholes, wh)
	}

	artifacts := make([]*entity.Artifact, 0, len(cfg.Artifacts))
	for _, ac := range cfg.Artifacts {
		pos, err := vec2(ac.Position, "artifact position")
		if err != nil {
			return nil, err
		}
		a, err := entity.NewArtifact(ac.ID, pos)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	return world.New(bodies, wormholes, artifacts, cfg.MaxRadius)
}

func buildBody(bc BodyConfig) (*entity.Body, error) {
	if bc.Orbit == nil {
		pos, err := vec2(bc.Position, "body position")
		if err != nil {
			return nil, err
		}
		return entity.NewStationaryBody(bc.ID, bc.Radius, bc.Mass, pos)
	}
	center, err := vec2(bc.Orbit.Center, "orbit center")
	if err != nil {
		return nil, err
	}
	orbit, err := entity.NewEllipticalOrbit(bc.Orbit.A, bc.Orbit.B, bc.Orbit.Omega, bc.Orbit.Phi, center, bc.Orbit.Angle)
	if err != nil {
		return nil, err
	}
	return entity.NewOrbitingBody(bc.ID, bc.Radius, bc.Mass, orbit)
}

func vec2(v []float64, what string) (mat.Matrix, error) {
	if len(v) != 2 {
		return mat.Matrix{}, fmt.Errorf("%s: %w: got %d components", what, entity.ErrBadShape, len(v))
	}
	return mat.Vec2(v[0], v[1]), nil
}

// Compute builds the start vertex, runs the search for K artifacts, and
// stores the result. It wraps the solver's exhaustion as ErrNoPath.
func (e *Engine) Compute() error {
	start, err := e.startVertex()
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	k := e.cfg.K
	isGoal := func(s plan.StateVertex) bool { return s.Collected.Len() >= k }

	result, err := e.solver.Solve(start, isGoal, math.Inf(1))
	if err != nil {
		if errors.Is(err, plan.ErrNoPath) {
			return fmt.Errorf("%w: %w", ErrNoPath, err)
		}
		return fmt.Errorf("engine: %w", err)
	}

	e.result = result
	e.properTimes = e.accumulateProperTimes(result)
	e.cursor = 0
	return nil
}

// startVertex builds the initial planning state from the config.
func (e *Engine) startVertex() (plan.StateVertex, error) {
	pos, err := vec2(e.cfg.Initial.Position, "initial position")
	if err != nil {
		return plan.StateVertex{}, err
	}
	vel, err := vec2(e.cfg.Initial.Velocity, "initial velocity")
	if err != nil {
		return plan.StateVertex{}, err
	}
	if e.cfg.Initial.Fuel < 0 {
		return plan.StateVertex{}, fmt.Errorf("initial fuel must be non-negative, got %g", e.cfg.Initial.Fuel)
	}
	return plan.NewStateVertex(pos, vel, 0, e.cfg.Initial.Fuel, nil), nil
}

// accumulateProperTimes computes the ship's onboard time at each path step
// by summing the proper duration of every edge.
func (e *Engine) accumulateProperTimes(result *plan.Result) []float64 {
	times := make([]float64, len(result.Path))
	var tP float64
	for i, step := range result.Path {
		if i > 0 {
			prev := result.Path[i-1].State
			if thrust, ok := step.Action.(plan.ThrustAction); ok {
				tP += e.policy.ToProper(thrust.DtGlobal, prev.X, prev.V, prev.TU)
			}
		}
		times[i] = tP
	}
	return times
}

// Result returns the stored search result, or nil before Compute.
func (e *Engine) Result() *plan.Result { return e.result }

// Steps returns the number of frames a computed run will dispense.
func (e *Engine) Steps() int {
	if e.result == nil {
		return 0
	}
	return len(e.result.Path)
}

// Step dispenses the next frame of the computed path. It returns
// ErrNotComputed before Compute and ErrRunComplete past the final element.
func (e *Engine) Step() (world.Frame, error) {
	if e.result == nil {
		return world.Frame{}, ErrNotComputed
	}
	if e.cursor >= len(e.result.Path) {
		return world.Frame{}, ErrRunComplete
	}
	step := e.result.Path[e.cursor]
	tP := e.properTimes[e.cursor]
	e.cursor++
	return e.frame(step.State, tP), nil
}

// frame projects a planning state plus an entity snapshot at its global
// time into the egress record.
func (e *Engine) frame(s plan.StateVertex, tP float64) world.Frame {
	f := world.Snapshot(e.world, s.TU, e.cfg.VelocityDelta)
	f.Ship = world.ShipFrame{
		X:         [2]float64{s.X.X(), s.X.Y()},
		V:         [2]float64{s.V.X(), s.V.Y()},
		Fuel:      s.Fuel,
		TProper:   tP,
		Collected: s.Collected.Sorted(),
	}
	return f
}

// Shutdown releases the stored result. The engine can be recomputed.
func (e *Engine) Shutdown() {
	e.result = nil
	e.properTimes = nil
	e.cursor = 0
}
