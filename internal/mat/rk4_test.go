package mat

import (
	"math"
	"testing"
)

// On a linear field f(x) = a*x a single RK4 step must match the 4th-order
// Taylor expansion of exp(a*dt)*x0 exactly (up to rounding).
func TestIntegrateLinearFieldMatchesTaylor(t *testing.T) {
	tests := []struct {
		name string
		a    float64
		dt   float64
	}{
		{"decay", -0.5, 0.1},
		{"growth", 1.25, 0.05},
		{"stiff", -3.0, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0 := New(1, 1, 2.0)
			got := Integrate(x0, 0, tt.dt, func(x Matrix, _ float64) Matrix {
				return x.Scale(tt.a)
			})

			ad := tt.a * tt.dt
			taylor := 1 + ad + ad*ad/2 + ad*ad*ad/6 + ad*ad*ad*ad/24
			want := 2.0 * taylor
			if math.Abs(got.At(0, 0)-want) > 1e-12 {
				t.Errorf("RK4 = %.15g, want %.15g", got.At(0, 0), want)
			}
		})
	}
}

// A constant derivative integrates to x0 + c*dt with no truncation error.
func TestIntegrateConstantField(t *testing.T) {
	c := Vec2(3, -1)
	got := Integrate(Vec2(1, 1), 0, 2, func(Matrix, float64) Matrix { return c })
	if !got.AllClose(Vec2(7, -1), 1e-12) {
		t.Errorf("constant field = %v, want (7, -1)", got)
	}
}

// The stage times must be t, t+dt/2, t+dt/2, t+dt.
func TestIntegrateStageTimes(t *testing.T) {
	var times []float64
	Integrate(Vec2(0, 0), 10, 1, func(_ Matrix, tau float64) Matrix {
		times = append(times, tau)
		return Vec2(0, 0)
	})
	want := []float64{10, 10.5, 10.5, 11}
	if len(times) != 4 {
		t.Fatalf("got %d stages, want 4", len(times))
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("stage %d at t=%g, want %g", i, times[i], want[i])
		}
	}
}

// Orbit under f(x) = [[0,1],[-1,0]]x stays near the unit circle for one
// step; RK4's local error is O(dt^5).
func TestIntegrateRotationField(t *testing.T) {
	rot := func(x Matrix, _ float64) Matrix {
		return Vec2(x.Y(), -x.X())
	}
	dt := 0.01
	got := Integrate(Vec2(1, 0), 0, dt, rot)
	want := Vec2(math.Cos(dt), -math.Sin(dt))
	if !got.AllClose(want, 1e-10) {
		t.Errorf("rotation step = %v, want %v", got, want)
	}
}
