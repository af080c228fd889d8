package mat

// VectorSpace is satisfied by any integrable state: it must support addition
// with its own type and multiplication by a scalar. Matrix satisfies it, as
// does any composite state whose fields do.
type VectorSpace[S any] interface {
	Add(S) S
	Scale(float64) S
}

// Integrate advances s0 by one classical fourth-order Runge-Kutta step of
// size dt under the derivative field f(state, t):
//
//	k1 = f(s0, t)
//	k2 = f(s0 + k1*dt/2, t + dt/2)
//	k3 = f(s0 + k2*dt/2, t + dt/2)
//	k4 = f(s0 + k3*dt,   t + dt)
//	result = s0 + (k1 + 2*k2 + 2*k3 + k4) * dt/6
func Integrate[S VectorSpace[S]](s0 S, t, dt float64, f func(S, float64) S) S {
	k1 := f(s0, t)
	k2 := f(s0.Add(k1.Scale(dt/2)), t+dt/2)
	k3 := f(s0.Add(k2.Scale(dt/2)), t+dt/2)
	k4 := f(s0.Add(k3.Scale(dt)), t+dt)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return s0.Add(sum.Scale(dt / 6))
}
