package plan

import (
	"fmt"
	"math"
)

// Key identifies an equivalence class of continuous states: integer bin
// coordinates along each axis plus the canonical form of the collected set.
// It is the only identity the visited set and parent map use — two
// continuous states sharing a Key are the same planning node. All fields
// are comparable, so a Key works directly as a map key.
type Key struct {
	QX0, QX1 int64
	QV0, QV1 int64
	QT       int64
	QF       int64
	Artifacts string
}

// Quantizer folds a StateVertex into a Key by component-wise rounding
// against configured bin sizes. Binning to integers (rather than rounded
// floats) gives well-defined hashing and normalizes -0.0 to +0.0 for free.
type Quantizer struct {
	PosBin  float64
	VelBin  float64
	TimeBin float64
	FuelBin float64
}

// Quantize maps s to its bin key. It panics if any component is NaN: NaN
// never occurs in a valid state, so one reaching the quantizer is a
// programming error upstream.
func (q Quantizer) Quantize(s StateVertex) Key {
	return Key{
		QX0:       bin(s.X.X(), q.PosBin),
		QX1:       bin(s.X.Y(), q.PosBin),
		QV0:       bin(s.V.X(), q.VelBin),
		QV1:       bin(s.V.Y(), q.VelBin),
		QT:        bin(s.TU, q.TimeBin),
		QF:        bin(s.Fuel, q.FuelBin),
		Artifacts: s.Collected.CanonicalKey(),
	}
}

func bin(v, size float64) int64 {
	if math.IsNaN(v) {
		panic("plan: NaN reached the quantizer")
	}
	return int64(math.Round(v / size))
}

// String renders the key for diagnostics.
func (k Key) String() string {
	return fmt.Sprintf("x(%d,%d) v(%d,%d) t%d f%d [%s]", k.QX0, k.QX1, k.QV0, k.QV1, k.QT, k.QF, k.Artifacts)
}
