package plan

import (
	"fmt"
	"math"

	"github.com/astrogator/voyager/internal/entity"
	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/physics"
	"github.com/astrogator/voyager/internal/timeflow"
	"github.com/astrogator/voyager/internal/world"
)

// craftState is the 4-tuple integrated by the thrust model: position,
// velocity, remaining fuel, and global time, all advanced in proper time.
type craftState struct {
	x, v mat.Matrix
	fuel float64
	tU   float64
}

func (s craftState) Add(o craftState) craftState {
	return craftState{
		x:    s.x.Add(o.x),
		v:    s.v.Add(o.v),
		fuel: s.fuel + o.fuel,
		tU:   s.tU + o.tU,
	}
}

func (s craftState) Scale(k float64) craftState {
	return craftState{
		x:    s.x.Scale(k),
		v:    s.v.Scale(k),
		fuel: s.fuel * k,
		tU:   s.tU * k,
	}
}

// ThrustModel enumerates thrust actions relative to the velocity heading
// and applies them by integrating the equations of motion with RK4 under
// gravity, thrust, and relativistic time-rate coupling.
type ThrustModel struct {
	env    physics.Environment
	policy timeflow.Policy
	index  world.Index
	world  *world.World
	craft  *entity.Spacecraft

	// captureRadius is the distance within which an artifact counts as
	// collected. The default is mat.Eps: capture means the continuous
	// position coincides with the artifact up to numerical noise.
	captureRadius float64
}

// NewThrustModel wires a thrust model over the shared run components.
// A captureRadius of zero selects the default mat.Eps.
func NewThrustModel(env physics.Environment, policy timeflow.Policy, idx world.Index, w *world.World, craft *entity.Spacecraft, captureRadius float64) *ThrustModel {
	if captureRadius <= 0 {
		captureRadius = mat.Eps
	}
	return &ThrustModel{
		env:           env,
		policy:        policy,
		index:         idx,
		world:         w,
		craft:         craft,
		captureRadius: captureRadius,
	}
}

// Enumerate emits one action per (direction, thrust level) pair plus a
// trailing coast, deduplicated by (level, direction) so a zero thrust level
// among the configured levels does not produce the coast twice. The fan-out
// is at most |directions|*|levels| + 1.
func (m *ThrustModel) Enumerate(from StateVertex) []Action {
	forward := m.forward(from)

	type fingerprint struct {
		level  float64
		dx, dy float64
	}
	seen := make(map[fingerprint]bool)
	var actions []Action
	emit := func(level float64, dir mat.Matrix) {
		fp := fingerprint{level: level, dx: dir.X(), dy: dir.Y()}
		if seen[fp] {
			return
		}
		seen[fp] = true
		actions = append(actions, ThrustAction{Level: level, Direction: dir, DtGlobal: m.policy.DtU()})
	}

	for _, theta := range m.craft.Directions {
		dir := mat.RotateVec2(forward, theta)
		for _, level := range m.craft.ThrustLevels {
			emit(level, dir)
		}
	}
	emit(0, forward)

	return actions
}

// forward is the unit vector of the current velocity, or the x axis when
// the craft is at rest.
func (m *ThrustModel) forward(from StateVertex) mat.Matrix {
	if dir, err := mat.Normalized(from.V); err == nil {
		return dir
	}
	return mat.Vec2(1, 0)
}

// Apply integrates one action and returns the successor, or (nil, nil)
// when the successor is infeasible. Infeasible edges prune the search
// tree; they are not run-level failures.
func (m *ThrustModel) Apply(from StateVertex, a Action) (*StateVertex, error) {
	thrust, ok := a.(ThrustAction)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrInvalidAction, a)
	}

	dtProper := m.policy.ToProper(thrust.DtGlobal, from.X, from.V, from.TU)
	s := mat.Integrate(craftState{x: from.X, v: from.V, fuel: from.Fuel, tU: from.TU},
		0, dtProper, func(s craftState, tau float64) craftState {
			return m.derivative(s, thrust)
		})

	s.fuel = math.Max(s.fuel, 0)

	next := NewStateVertex(s.x, s.v, s.tU, s.fuel, from.Collected.With(m.artifactsHere(s.x, s.tU)...))
	if !next.Valid(m.policy.TMax()) {
		return nil, nil
	}
	if m.collides(s.x, s.tU) {
		return nil, nil
	}
	if mat.Norm(s.x) > m.world.MaxRadius() {
		return nil, nil
	}
	return &next, nil
}

// derivative evaluates the equations of motion at one integrator stage.
// The time-rate factor gamma couples every proper-time derivative back to
// the global frame and is evaluated at the stage's own (x, v, tU).
func (m *ThrustModel) derivative(s craftState, thrust ThrustAction) craftState {
	gamma := m.env.Gamma(s.x, s.v, s.tU)

	accel := m.env.Gravity(s.x, s.tU)
	if s.fuel > 0 {
		accel = accel.Add(thrust.Direction.Scale(thrust.Level / (m.craft.Mass + s.fuel)))
	}

	return craftState{
		x:    s.v.Scale(gamma),
		v:    accel.Scale(gamma),
		fuel: -mat.SafeDiv(thrust.Level, m.craft.ExhaustVelocity, 0),
		tU:   gamma,
	}
}

// artifactsHere returns the ids of artifacts within the capture radius.
func (m *ThrustModel) artifactsHere(x mat.Matrix, tU float64) []uint32 {
	found := m.index.QueryArtifacts(x, m.captureRadius, tU)
	ids := make([]uint32, 0, len(found))
	for _, a := range found {
		ids = append(ids, a.ID)
	}
	return ids
}

// collides reports whether x lies inside any body at time tU. The query
// radius is bounded by the largest body radius plus one.
func (m *ThrustModel) collides(x mat.Matrix, tU float64) bool {
	for _, b := range m.index.QueryBodies(x, m.world.MaxBodyRadius()+1, tU) {
		if mat.Norm(x.Sub(b.Pos(tU))) <= b.Radius {
			return true
		}
	}
	return false
}
