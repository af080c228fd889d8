// Package physics models the environmental effects acting on the
// spacecraft: Newtonian gravity from every celestial body plus the
// weak-field relativistic time-rate factor derived from the gravitational
// potential and the ship's speed.
package physics

import (
	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/world"
)

// Units are kilometers, kilograms, and seconds throughout.
const (
	// G is the gravitational constant in km^3 kg^-1 s^-2.
	G = 6.6743e-11 * 1e-9
	// C is the speed of light in km/s.
	C = 299792.458
)

// Environment exposes gravity, potential, and the time-dilation factor at a
// point of the universe. Implementations must be pure: repeated calls with
// equal arguments return equal results.
type Environment interface {
	// Gravity returns the gravitational acceleration at x and time tU as a
	// 2x1 vector.
	Gravity(x mat.Matrix, tU float64) mat.Matrix
	// Potential returns the (negative) gravitational potential at x.
	Potential(x mat.Matrix, tU float64) float64
	// Gamma returns dt_global/dt_proper at the given position and velocity.
	Gamma(x, v mat.Matrix, tU float64) float64
	// InvGamma returns dt_proper/dt_global, i.e. 1/Gamma.
	InvGamma(x, v mat.Matrix, tU float64) float64
}

// Newtonian is the reference Environment: a direct sum over all bodies.
// Denominators are softened with mat.Eps to avoid singularities at body
// centers; this is a numerical guard, not a physical cutoff.
type Newtonian struct {
	world *world.World
}

// NewNewtonian creates an environment over w.
func NewNewtonian(w *world.World) *Newtonian {
	return &Newtonian{world: w}
}

// Gravity sums G*m_i*(r_i - x) / (|r_i - x|^3 + eps) over all bodies.
func (e *Newtonian) Gravity(x mat.Matrix, tU float64) mat.Matrix {
	a := mat.Vec2(0, 0)
	for _, b := range e.world.Bodies() {
		ri := b.Pos(tU).Sub(x)
		d := mat.Norm(ri)
		a = a.Add(ri.Scale(G * b.Mass / (d*d*d + mat.Eps)))
	}
	return a
}

// Potential sums -G*m_i / (|r_i - x| + eps) over all bodies.
func (e *Newtonian) Potential(x mat.Matrix, tU float64) float64 {
	var phi float64
	for _, b := range e.world.Bodies() {
		d := mat.Norm(b.Pos(tU).Sub(x))
		phi += G * b.Mass / (d + mat.Eps)
	}
	return -phi
}

// Gamma returns 1 / (1 + phi/c^2 - v^2/(2c^2)).
func (e *Newtonian) Gamma(x, v mat.Matrix, tU float64) float64 {
	return 1 / e.InvGamma(x, v, tU)
}

// InvGamma returns 1 + phi/c^2 - v^2/(2c^2).
func (e *Newtonian) InvGamma(x, v mat.Matrix, tU float64) float64 {
	v2 := mat.Dot(v, v)
	phi := e.Potential(x, tU)
	c2 := C * C
	return 1 + phi/c2 - v2/(2*c2)
}
