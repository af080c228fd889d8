package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/astrogator/voyager/internal/world"
)

func TestFrameLine(t *testing.T) {
	f := world.Frame{
		TU: 2.5,
		Ship: world.ShipFrame{
			X:         [2]float64{1.25, -3},
			V:         [2]float64{0.5, 0},
			Fuel:      7.125,
			TProper:   2.499,
			Collected: []uint32{3, 9},
		},
	}
	line := FrameLine(4, f)

	for _, want := range []string{"step   4", "2.500", "1.250", "7.125", "[3,9]"} {
		if !strings.Contains(line, want) {
			t.Errorf("FrameLine missing %q: %s", want, line)
		}
	}
}

func TestFrameLineNoArtifacts(t *testing.T) {
	line := FrameLine(0, world.Frame{})
	if !strings.Contains(line, "[-]") {
		t.Errorf("empty collected should render as [-]: %s", line)
	}
}

func TestSummary(t *testing.T) {
	out := Summary(SummaryData{
		World:     "twin-suns",
		K:         2,
		Steps:     5,
		TotalCost: 4,
		Expanded:  1234567,
		Collected: 2,
		FuelLeft:  1.5,
		Elapsed:   1500 * time.Millisecond,
	})

	for _, want := range []string{"twin-suns", "5 steps", "1,234,567", "2 collected (target 2)", "1.5s"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}
