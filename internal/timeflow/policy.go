// Package timeflow converts between global coordinate time and the
// spacecraft's proper time along a locally-constant state, and carries the
// search's fixed global step and horizon.
package timeflow

import (
	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/physics"
)

// IntegrationStep is the rectangle-rule step used by the reference policy.
// Higher-order schemes are allowed as long as errors stay bounded by it.
const IntegrationStep = 0.01

// Policy converts durations between the global and proper time frames and
// exposes the fixed global step dt_u used by action enumeration plus the
// horizon t_max.
type Policy interface {
	// ToProper converts a global-time duration starting at tU into proper
	// time, holding x and v constant.
	ToProper(dtU float64, x, v mat.Matrix, tU float64) float64
	// ToGlobal converts a proper-time duration starting at tU into global
	// time, holding x and v constant.
	ToGlobal(dtP float64, x, v mat.Matrix, tU float64) float64
	// DtU returns the fixed global step used for action durations.
	DtU() float64
	// TMax returns the simulation horizon in global time.
	TMax() float64
}

// Rectangle is the reference Policy: a rectangle-rule sum over the
// environment's time-rate factor.
type Rectangle struct {
	env  physics.Environment
	dtU  float64
	tMax float64
	step float64
}

// NewRectangle creates a policy over env with the given global step and
// horizon.
func NewRectangle(env physics.Environment, tMax, dtU float64) *Rectangle {
	return &Rectangle{env: env, dtU: dtU, tMax: tMax, step: IntegrationStep}
}

// ToProper integrates invGamma over [tU, tU+dtU].
func (p *Rectangle) ToProper(dtU float64, x, v mat.Matrix, tU float64) float64 {
	var dtP float64
	for t := tU; t < tU+dtU; t += p.step {
		dtP += p.step * p.env.InvGamma(x, v, t)
	}
	return dtP
}

// ToGlobal accumulates gamma-weighted steps until the proper duration dtP
// is covered. It mirrors ToProper; the result is exact to within one step.
func (p *Rectangle) ToGlobal(dtP float64, x, v mat.Matrix, tU float64) float64 {
	var dtU float64
	for t := tU; dtU < dtP; t += p.step {
		dtU += p.step * p.env.Gamma(x, v, t)
	}
	return dtU
}

// DtU returns the fixed global action step.
func (p *Rectangle) DtU() float64 { return p.dtU }

// TMax returns the global-time horizon.
func (p *Rectangle) TMax() float64 { return p.tMax }
