package physics

import (
	"math"
	"testing"

	"github.com/astrogator/voyager/internal/entity"
	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/world"
)

func worldWithBody(t *testing.T, mass float64, pos mat.Matrix) *world.World {
	t.Helper()
	b, err := entity.NewStationaryBody(1, 1, mass, pos)
	if err != nil {
		t.Fatalf("NewStationaryBody: %v", err)
	}
	w, err := world.New([]*entity.Body{b}, nil, nil, 1e9)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func emptyWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.New(nil, nil, nil, 1e9)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestGravitySingleBody(t *testing.T) {
	const mass = 5.972e24 // an Earth
	const d = 6371.0      // km
	env := NewNewtonian(worldWithBody(t, mass, mat.Vec2(d, 0)))

	g := env.Gravity(mat.Vec2(0, 0), 0)

	// Acceleration points toward the body (+x) with magnitude G*m/d^2.
	want := G * mass / (d * d)
	if math.Abs(g.X()-want)/want > 1e-9 {
		t.Errorf("gravity magnitude = %g, want %g", g.X(), want)
	}
	if g.Y() != 0 {
		t.Errorf("gravity y = %g, want 0", g.Y())
	}
	if g.X() <= 0 {
		t.Errorf("gravity points away from body")
	}
}

func TestGravityAtBodyCenterIsFinite(t *testing.T) {
	env := NewNewtonian(worldWithBody(t, 1e24, mat.Vec2(0, 0)))
	g := env.Gravity(mat.Vec2(0, 0), 0)
	if math.IsNaN(g.X()) || math.IsInf(g.X(), 0) {
		t.Errorf("gravity at body center = %v, want finite (eps-softened)", g)
	}
}

func TestPotentialIsNegative(t *testing.T) {
	env := NewNewtonian(worldWithBody(t, 1e24, mat.Vec2(100, 0)))
	phi := env.Potential(mat.Vec2(0, 0), 0)
	if phi >= 0 {
		t.Errorf("potential = %g, want negative", phi)
	}
	want := -G * 1e24 / (100 + mat.Eps)
	if math.Abs(phi-want) > math.Abs(want)*1e-12 {
		t.Errorf("potential = %g, want %g", phi, want)
	}
}

func TestGammaFlatSpace(t *testing.T) {
	env := NewNewtonian(emptyWorld(t))
	x, v := mat.Vec2(0, 0), mat.Vec2(0, 0)

	if got := env.InvGamma(x, v, 0); got != 1 {
		t.Errorf("InvGamma in empty universe at rest = %g, want exactly 1", got)
	}
	if got := env.Gamma(x, v, 0); got != 1 {
		t.Errorf("Gamma in empty universe at rest = %g, want exactly 1", got)
	}
}

func TestGammaVelocityAndPotentialSlowClocks(t *testing.T) {
	env := NewNewtonian(worldWithBody(t, 1e30, mat.Vec2(1000, 0)))
	x := mat.Vec2(0, 0)

	t.Run("moving clock", func(t *testing.T) {
		still := env.InvGamma(x, mat.Vec2(0, 0), 0)
		moving := env.InvGamma(x, mat.Vec2(1000, 0), 0)
		if moving >= still {
			t.Errorf("moving invGamma %g >= still %g, want smaller", moving, still)
		}
	})

	t.Run("deep potential", func(t *testing.T) {
		flat := NewNewtonian(emptyWorld(t)).InvGamma(x, mat.Vec2(0, 0), 0)
		deep := env.InvGamma(x, mat.Vec2(0, 0), 0)
		if deep >= flat {
			t.Errorf("deep invGamma %g >= flat %g, want smaller", deep, flat)
		}
	})
}

func TestGammaInverseConsistency(t *testing.T) {
	env := NewNewtonian(worldWithBody(t, 1e28, mat.Vec2(500, 100)))
	x, v := mat.Vec2(1, 2), mat.Vec2(3, 4)
	product := env.Gamma(x, v, 7) * env.InvGamma(x, v, 7)
	if math.Abs(product-1) > 1e-14 {
		t.Errorf("gamma * invGamma = %.16g, want 1", product)
	}
}
