// Package worldfile reads TOML world descriptions from disk and converts
// them into engine configurations. A world file is the on-disk ingress of
// a run: universe geometry, time policy, quantization bins, spacecraft,
// initial state, and the artifact target.
package worldfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/astrogator/voyager/internal/engine"
)

// ErrMissingSection is returned when a required section is absent.
var ErrMissingSection = errors.New("missing required section")

// Document is the TOML shape of a world description.
type Document struct {
	Name      string  `toml:"name"`
	MaxRadius float64 `toml:"max-radius"`
	K         int     `toml:"k"`

	// CaptureRadius widens the artifact capture distance; zero keeps the
	// engine default (numerical-noise coincidence).
	CaptureRadius float64 `toml:"capture-radius,omitempty"`
	// VelocityDelta overrides the finite-difference step for trajectory
	// velocities; zero keeps the default.
	VelocityDelta float64 `toml:"velocity-delta,omitempty"`

	Time         *TimeSection         `toml:"time"`
	Quantization *QuantizationSection `toml:"quantization"`
	Spacecraft   *SpacecraftSection   `toml:"spacecraft"`
	Initial      *InitialSection      `toml:"initial"`

	Bodies    []BodySection     `toml:"bodies,omitempty"`
	Wormholes []WormholeSection `toml:"wormholes,omitempty"`
	Artifacts []ArtifactSection `toml:"artifacts,omitempty"`
}

// TimeSection carries the horizon and the global action step.
type TimeSection struct {
	TMax float64 `toml:"tmax"`
	Dt   float64 `toml:"dt"`
}

// QuantizationSection carries the state bin sizes.
type QuantizationSection struct {
	Pos  float64 `toml:"pos"`
	Vel  float64 `toml:"vel"`
	Time float64 `toml:"time"`
	Fuel float64 `toml:"fuel"`
}

// SpacecraftSection describes the vehicle.
type SpacecraftSection struct {
	Mass         float64   `toml:"mass"`
	Fuel         float64   `toml:"fuel"`
	ThrustLevels []float64 `toml:"thrust-levels"`
	ExhaustSpeed float64   `toml:"exhaust-speed"`
	Directions   []float64 `toml:"directions"`
}

// InitialSection is the starting condition.
type InitialSection struct {
	Position []float64 `toml:"position"`
	Velocity []float64 `toml:"velocity"`
	Fuel     float64   `toml:"fuel"`
}

// BodySection describes a body; stationary when Orbit is nil.
type BodySection struct {
	ID       uint32        `toml:"id"`
	Mass     float64       `toml:"mass"`
	Radius   float64       `toml:"radius"`
	Position []float64     `toml:"position,omitempty"`
	Orbit    *OrbitSection `toml:"orbit,omitempty"`
}

// OrbitSection parameterizes an elliptical trajectory.
type OrbitSection struct {
	A      float64   `toml:"a"`
	B      float64   `toml:"b"`
	Omega  float64   `toml:"omega"`
	Phi    float64   `toml:"phi"`
	Angle  float64   `toml:"angle"`
	Center []float64 `toml:"center"`
}

// WormholeSection describes a wormhole.
type WormholeSection struct {
	ID     uint32    `toml:"id"`
	Entry  []float64 `toml:"entry"`
	Exit   []float64 `toml:"exit"`
	TOpen  float64   `toml:"t-open"`
	TClose float64   `toml:"t-close"`
}

// ArtifactSection describes an artifact.
type ArtifactSection struct {
	ID       uint32    `toml:"id"`
	Position []float64 `toml:"position"`
}

// Load reads and parses the world file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file: %w", err)
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}

// Save writes the world description to path, creating parent directories
// as needed.
func Save(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling world file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing world file: %w", err)
	}
	return nil
}

// EngineConfig converts the document into an engine configuration. The
// engine performs the deep entity validation; this only checks that the
// required sections exist.
func (d *Document) EngineConfig() (engine.Config, error) {
	for _, sec := range []struct {
		name    string
		present bool
	}{
		{"time", d.Time != nil},
		{"quantization", d.Quantization != nil},
		{"spacecraft", d.Spacecraft != nil},
		{"initial", d.Initial != nil},
	} {
		if !sec.present {
			return engine.Config{}, fmt.Errorf("%w: [%s]", ErrMissingSection, sec.name)
		}
	}

	cfg := engine.Config{
		World: engine.WorldConfig{
			MaxRadius: d.MaxRadius,
		},
		Time: engine.TimeConfig{TMaxU: d.Time.TMax, DtU: d.Time.Dt},
		Quantization: engine.QuantizationConfig{
			PosBin:  d.Quantization.Pos,
			VelBin:  d.Quantization.Vel,
			TimeBin: d.Quantization.Time,
			FuelBin: d.Quantization.Fuel,
		},
		Spacecraft: engine.SpacecraftConfig{
			Mass:         d.Spacecraft.Mass,
			MaxFuel:      d.Spacecraft.Fuel,
			ThrustLevels: d.Spacecraft.ThrustLevels,
			ExhaustSpeed: d.Spacecraft.ExhaustSpeed,
			Directions:   d.Spacecraft.Directions,
		},
		Initial: engine.InitialState{
			Position: d.Initial.Position,
			Velocity: d.Initial.Velocity,
			Fuel:     d.Initial.Fuel,
		},
		K:             d.K,
		CaptureRadius: d.CaptureRadius,
		VelocityDelta: d.VelocityDelta,
	}

	for _, b := range d.Bodies {
		bc := engine.BodyConfig{ID: b.ID, Mass: b.Mass, Radius: b.Radius, Position: b.Position}
		if b.Orbit != nil {
			bc.Orbit = &engine.OrbitConfig{
				A:      b.Orbit.A,
				B:      b.Orbit.B,
				Omega:  b.Orbit.Omega,
				Phi:    b.Orbit.Phi,
				Angle:  b.Orbit.Angle,
				Center: b.Orbit.Center,
			}
		}
		cfg.World.Bodies = append(cfg.World.Bodies, bc)
	}
	for _, w := range d.Wormholes {
		cfg.World.Wormholes = append(cfg.World.Wormholes, engine.WormholeConfig{
			ID: w.ID, Entry: w.Entry, Exit: w.Exit, TOpen: w.TOpen, TClose: w.TClose,
		})
	}
	for _, a := range d.Artifacts {
		cfg.World.Artifacts = append(cfg.World.Artifacts, engine.ArtifactConfig{ID: a.ID, Position: a.Position})
	}

	return cfg, nil
}
