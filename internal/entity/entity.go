// Package entity defines the objects that inhabit the simulated universe:
// celestial bodies on fixed or parametric trajectories, timed wormholes,
// collectible artifacts, and the spacecraft itself. Constructors validate
// their inputs and return errors; a successfully constructed entity is
// immutable for the lifetime of a run.
package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/astrogator/voyager/internal/mat"
)

// ErrNonPositive is returned when a quantity that must be strictly positive
// (mass, radius, exhaust velocity, orbit axes) is zero or negative.
var ErrNonPositive = errors.New("value must be positive")

// ErrBadShape is returned when a spatial quantity is not a 2x1 vector.
var ErrBadShape = errors.New("expected a 2x1 vector")

// ErrTimeWindow is returned when a wormhole's open interval is inverted.
var ErrTimeWindow = errors.New("t_open must be before t_close")

// ErrNoThrustLevels is returned when a spacecraft has no thrust levels.
var ErrNoThrustLevels = errors.New("thrust levels must be non-empty")

// ErrNegativeThrust is returned when a thrust level is negative.
var ErrNegativeThrust = errors.New("thrust level must be non-negative")

// ErrAngleRange is returned when an orientation angle falls outside [0, 2*pi).
var ErrAngleRange = errors.New("angle must be in [0, 2*pi)")

// DefaultVelocityDelta is the finite-difference step used to derive a
// trajectory's velocity when no analytic derivative is available.
const DefaultVelocityDelta = 1e-3

// Trajectory computes the position of an orbiting object at global time t.
type Trajectory interface {
	Pos(t float64) mat.Matrix
}

// VelocityProvider is an optional analytic override for trajectory velocity.
// Trajectories that do not implement it fall back to a finite difference.
type VelocityProvider interface {
	Velocity(t float64) mat.Matrix
}

// TrajectoryVelocity returns the velocity of tr at time t: the analytic
// derivative when tr provides one, otherwise the forward finite difference
// (pos(t+delta) - pos(t)) / delta.
func TrajectoryVelocity(tr Trajectory, t, delta float64) mat.Matrix {
	if vp, ok := tr.(VelocityProvider); ok {
		return vp.Velocity(t)
	}
	if delta <= 0 {
		delta = DefaultVelocityDelta
	}
	return tr.Pos(t + delta).Sub(tr.Pos(t)).Scale(1 / delta)
}

// EllipticalOrbit traces pos(t) = R(angle)*[a*cos(omega*t+phi); b*sin(omega*t+phi)] + center.
type EllipticalOrbit struct {
	A, B   float64 // semi-axes
	Omega  float64 // angular velocity
	Phi    float64 // phase shift
	Center mat.Matrix
	Angle  float64 // orientation of the ellipse, radians in [0, 2*pi)
}

// NewEllipticalOrbit validates and constructs an elliptical trajectory.
func NewEllipticalOrbit(a, b, omega, phi float64, center mat.Matrix, angle float64) (*EllipticalOrbit, error) {
	if a <= 0 {
		return nil, fmt.Errorf("%w: semi-major axis %g", ErrNonPositive, a)
	}
	if b <= 0 {
		return nil, fmt.Errorf("%w: semi-minor axis %g", ErrNonPositive, b)
	}
	if omega <= 0 {
		return nil, fmt.Errorf("%w: angular velocity %g", ErrNonPositive, omega)
	}
	if !center.IsVec2() {
		return nil, fmt.Errorf("%w: orbit center", ErrBadShape)
	}
	if angle < 0 || angle >= 2*math.Pi {
		return nil, fmt.Errorf("%w: got %g", ErrAngleRange, angle)
	}
	return &EllipticalOrbit{A: a, B: b, Omega: omega, Phi: phi, Center: center, Angle: angle}, nil
}

// Pos returns the orbit position at global time t.
func (o *EllipticalOrbit) Pos(t float64) mat.Matrix {
	x := o.A * math.Cos(o.Omega*t+o.Phi)
	y := o.B * math.Sin(o.Omega*t+o.Phi)
	rotated := mat.RotateVec2(mat.Vec2(x, y), o.Angle)
	return o.Center.Add(rotated)
}

// Body is a gravitating celestial body: either stationary at a fixed
// position or carried along a Trajectory. Exactly one of the two is set.
type Body struct {
	ID     uint32
	Radius float64
	Mass   float64

	position   mat.Matrix
	trajectory Trajectory
}

// NewStationaryBody constructs a body fixed at pos.
func NewStationaryBody(id uint32, radius, mass float64, pos mat.Matrix) (*Body, error) {
	if err := validateBody(radius, mass); err != nil {
		return nil, fmt.Errorf("body %d: %w", id, err)
	}
	if !pos.IsVec2() {
		return nil, fmt.Errorf("body %d: %w: position", id, ErrBadShape)
	}
	return &Body{ID: id, Radius: radius, Mass: mass, position: pos}, nil
}

// NewOrbitingBody constructs a body following tr.
func NewOrbitingBody(id uint32, radius, mass float64, tr Trajectory) (*Body, error) {
	if err := validateBody(radius, mass); err != nil {
		return nil, fmt.Errorf("body %d: %w", id, err)
	}
	if tr == nil {
		return nil, fmt.Errorf("body %d: trajectory must not be nil", id)
	}
	return &Body{ID: id, Radius: radius, Mass: mass, trajectory: tr}, nil
}

func validateBody(radius, mass float64) error {
	if radius <= 0 {
		return fmt.Errorf("%w: radius %g", ErrNonPositive, radius)
	}
	if mass <= 0 {
		return fmt.Errorf("%w: mass %g", ErrNonPositive, mass)
	}
	return nil
}

// Pos returns the body's position at global time t.
func (b *Body) Pos(t float64) mat.Matrix {
	if b.trajectory != nil {
		return b.trajectory.Pos(t)
	}
	return b.position
}

// Stationary reports whether the body has a fixed position.
func (b *Body) Stationary() bool { return b.trajectory == nil }

// Velocity returns the body's velocity at time t using the trajectory's
// analytic derivative when available, a finite difference otherwise.
// Stationary bodies have zero velocity.
func (b *Body) Velocity(t, delta float64) mat.Matrix {
	if b.trajectory == nil {
		return mat.Vec2(0, 0)
	}
	return TrajectoryVelocity(b.trajectory, t, delta)
}

// Wormhole links an entry point to an exit point during [TOpen, TClose].
type Wormhole struct {
	ID     uint32
	Entry  mat.Matrix
	Exit   mat.Matrix
	TOpen  float64
	TClose float64
}

// NewWormhole validates and constructs a wormhole.
func NewWormhole(id uint32, entry, exit mat.Matrix, tOpen, tClose float64) (*Wormhole, error) {
	if !entry.IsVec2() {
		return nil, fmt.Errorf("wormhole %d: %w: entry", id, ErrBadShape)
	}
	if !exit.IsVec2() {
		return nil, fmt.Errorf("wormhole %d: %w: exit", id, ErrBadShape)
	}
	if tOpen >= tClose {
		return nil, fmt.Errorf("wormhole %d: %w: [%g, %g]", id, ErrTimeWindow, tOpen, tClose)
	}
	return &Wormhole{ID: id, Entry: entry, Exit: exit, TOpen: tOpen, TClose: tClose}, nil
}

// IsOpen reports whether the wormhole is traversable at global time t.
func (w *Wormhole) IsOpen(t float64) bool {
	return t >= w.TOpen && t <= w.TClose
}

// Artifact is a stationary collectible.
type Artifact struct {
	ID       uint32
	Position mat.Matrix
}

// NewArtifact validates and constructs an artifact.
func NewArtifact(id uint32, pos mat.Matrix) (*Artifact, error) {
	if !pos.IsVec2() {
		return nil, fmt.Errorf("artifact %d: %w: position", id, ErrBadShape)
	}
	return &Artifact{ID: id, Position: pos}, nil
}

// Spacecraft describes the vehicle being planned for. Directions are thrust
// headings in radians relative to the current velocity heading.
type Spacecraft struct {
	Mass            float64
	Fuel            float64
	MinFuelToLand   float64
	ThrustLevels    []float64
	ExhaustVelocity float64
	Directions      []float64
}

// NewSpacecraft validates and constructs a spacecraft.
func NewSpacecraft(mass, fuel, minFuelToLand float64, thrustLevels []float64, exhaustVelocity float64, directions []float64) (*Spacecraft, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("spacecraft: %w: mass %g", ErrNonPositive, mass)
	}
	if fuel < 0 {
		return nil, fmt.Errorf("spacecraft: fuel must be non-negative, got %g", fuel)
	}
	if len(thrustLevels) == 0 {
		return nil, fmt.Errorf("spacecraft: %w", ErrNoThrustLevels)
	}
	for _, level := range thrustLevels {
		if level < 0 {
			return nil, fmt.Errorf("spacecraft: %w: %g", ErrNegativeThrust, level)
		}
	}
	if exhaustVelocity <= 0 {
		return nil, fmt.Errorf("spacecraft: %w: exhaust velocity %g", ErrNonPositive, exhaustVelocity)
	}
	return &Spacecraft{
		Mass:            mass,
		Fuel:            fuel,
		MinFuelToLand:   minFuelToLand,
		ThrustLevels:    thrustLevels,
		ExhaustVelocity: exhaustVelocity,
		Directions:      directions,
	}, nil
}
