package timeflow

import (
	"math"
	"testing"

	"github.com/astrogator/voyager/internal/mat"
	"github.com/astrogator/voyager/internal/physics"
	"github.com/astrogator/voyager/internal/world"
)

func flatPolicy(t *testing.T, tMax, dtU float64) *Rectangle {
	t.Helper()
	w, err := world.New(nil, nil, nil, 1e9)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return NewRectangle(physics.NewNewtonian(w), tMax, dtU)
}

func TestAccessors(t *testing.T) {
	p := flatPolicy(t, 100, 2)
	if p.TMax() != 100 {
		t.Errorf("TMax = %g, want 100", p.TMax())
	}
	if p.DtU() != 2 {
		t.Errorf("DtU = %g, want 2", p.DtU())
	}
}

func TestToProperFlatSpace(t *testing.T) {
	p := flatPolicy(t, 100, 1)
	x, v := mat.Vec2(0, 0), mat.Vec2(0, 0)

	// In an empty universe at rest invGamma is exactly 1, so proper time
	// equals global time up to rectangle-rule accumulation error.
	got := p.ToProper(1, x, v, 0)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("ToProper(1) = %.12g, want 1", got)
	}
}

func TestToGlobalFlatSpace(t *testing.T) {
	p := flatPolicy(t, 100, 1)
	x, v := mat.Vec2(0, 0), mat.Vec2(0, 0)

	got := p.ToGlobal(1, x, v, 0)
	// The accumulation stops once the proper budget is covered, so the
	// result matches to within one integration step.
	if math.Abs(got-1) > IntegrationStep+1e-9 {
		t.Errorf("ToGlobal(1) = %.12g, want about 1", got)
	}
}

func TestRoundTrip(t *testing.T) {
	p := flatPolicy(t, 100, 1)
	x, v := mat.Vec2(0, 0), mat.Vec2(100, 0)

	dtP := p.ToProper(2, x, v, 5)
	back := p.ToGlobal(dtP, x, v, 5)
	if math.Abs(back-2) > 2*IntegrationStep {
		t.Errorf("round trip of 2 = %g", back)
	}
}

func TestMovingClockRunsSlow(t *testing.T) {
	p := flatPolicy(t, 100, 1)
	x := mat.Vec2(0, 0)

	rest := p.ToProper(1, x, mat.Vec2(0, 0), 0)
	fast := p.ToProper(1, x, mat.Vec2(10000, 0), 0)
	if fast >= rest {
		t.Errorf("fast clock proper time %g >= rest %g, want smaller", fast, rest)
	}
}
