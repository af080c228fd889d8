package engine

// Config is the engine's single ingress: everything needed to build a run.
// It is typically produced by the worldfile loader but can be constructed
// directly (the tests do).
type Config struct {
	World         WorldConfig
	Time          TimeConfig
	Quantization  QuantizationConfig
	Spacecraft    SpacecraftConfig
	Initial       InitialState
	K             int     // target artifact count
	CaptureRadius float64 // 0 selects the default (mat.Eps)
	VelocityDelta float64 // finite-difference step for trajectory velocity; 0 selects the default
}

// WorldConfig describes the universe.
type WorldConfig struct {
	Bodies    []BodyConfig
	Wormholes []WormholeConfig
	Artifacts []ArtifactConfig
	MaxRadius float64
}

// BodyConfig describes one celestial body. A body is stationary when Orbit
// is nil and Position is set; otherwise it follows the orbit.
type BodyConfig struct {
	ID       uint32
	Mass     float64
	Radius   float64
	Position []float64
	Orbit    *OrbitConfig
}

// OrbitConfig parameterizes an elliptical trajectory.
type OrbitConfig struct {
	A, B   float64
	Omega  float64
	Phi    float64
	Angle  float64
	Center []float64
}

// WormholeConfig describes one wormhole.
type WormholeConfig struct {
	ID     uint32
	Entry  []float64
	Exit   []float64
	TOpen  float64
	TClose float64
}

// ArtifactConfig describes one artifact.
type ArtifactConfig struct {
	ID       uint32
	Position []float64
}

// TimeConfig carries the horizon and the fixed global action step.
type TimeConfig struct {
	TMaxU float64
	DtU   float64
}

// QuantizationConfig carries the bin sizes of the state quantizer.
type QuantizationConfig struct {
	PosBin  float64
	VelBin  float64
	TimeBin float64
	FuelBin float64
}

// SpacecraftConfig describes the vehicle.
type SpacecraftConfig struct {
	Mass         float64
	MaxFuel      float64
	ThrustLevels []float64
	ExhaustSpeed float64
	Directions   []float64 // radians, relative to the velocity heading
}

// InitialState is the spacecraft's starting condition.
type InitialState struct {
	Position []float64
	Velocity []float64
	Fuel     float64
}
