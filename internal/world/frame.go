package world

// Frame types are the engine's only egress: one Frame per path step,
// carrying the ship state plus an instantaneous snapshot of every entity
// at the step's global time. Consumers treat frames as read-only; the
// JSON tags are shared by the telemetry stream and the run archive.

// ShipFrame is the spacecraft's observable state at one step.
type ShipFrame struct {
	X         [2]float64 `json:"x"`
	V         [2]float64 `json:"v"`
	Fuel      float64    `json:"fuel"`
	TProper   float64    `json:"t_p"`
	Collected []uint32   `json:"collected"`
}

// BodyFrame is a celestial body's snapshot at one step. V is derived from
// the body's trajectory (finite difference unless analytic) and is zero
// for stationary bodies.
type BodyFrame struct {
	ID     uint32     `json:"id"`
	X      [2]float64 `json:"x"`
	V      [2]float64 `json:"v"`
	Radius float64    `json:"radius"`
	Mass   float64    `json:"mass"`
}

// WormholeFrame is a wormhole's snapshot at one step.
type WormholeFrame struct {
	ID     uint32     `json:"id"`
	Entry  [2]float64 `json:"entry"`
	Exit   [2]float64 `json:"exit"`
	TOpen  float64    `json:"t_open"`
	TClose float64    `json:"t_close"`
	Open   bool       `json:"open"`
}

// ArtifactFrame is an artifact's snapshot at one step.
type ArtifactFrame struct {
	ID uint32     `json:"id"`
	X  [2]float64 `json:"x"`
}

// Frame is the full per-step snapshot.
type Frame struct {
	TU        float64         `json:"t_u"`
	Ship      ShipFrame       `json:"ship"`
	Bodies    []BodyFrame     `json:"bodies"`
	Wormholes []WormholeFrame `json:"wormholes"`
	Artifacts []ArtifactFrame `json:"artifacts"`
}

// Snapshot captures every entity in w at global time tU. velDelta is the
// finite-difference step for body velocities; pass 0 for the default. The
// ship portion is filled in by the caller.
func Snapshot(w *World, tU, velDelta float64) Frame {
	frame := Frame{TU: tU}
	for _, b := range w.Bodies() {
		p := b.Pos(tU)
		v := b.Velocity(tU, velDelta)
		frame.Bodies = append(frame.Bodies, BodyFrame{
			ID:     b.ID,
			X:      [2]float64{p.X(), p.Y()},
			V:      [2]float64{v.X(), v.Y()},
			Radius: b.Radius,
			Mass:   b.Mass,
		})
	}
	for _, wh := range w.Wormholes() {
		frame.Wormholes = append(frame.Wormholes, WormholeFrame{
			ID:     wh.ID,
			Entry:  [2]float64{wh.Entry.X(), wh.Entry.Y()},
			Exit:   [2]float64{wh.Exit.X(), wh.Exit.Y()},
			TOpen:  wh.TOpen,
			TClose: wh.TClose,
			Open:   wh.IsOpen(tU),
		})
	}
	for _, a := range w.Artifacts() {
		frame.Artifacts = append(frame.Artifacts, ArtifactFrame{
			ID: a.ID,
			X:  [2]float64{a.Position.X(), a.Position.Y()},
		})
	}
	return frame
}
