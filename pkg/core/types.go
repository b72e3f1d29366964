package core

// Point identifies a cell coordinate on the grid.
type Point struct {
	X int
	Y int
}

// SpikeType tags a spike with the influence that produced it.
type SpikeType string

const (
	// SpikePulse marks a plain neighbor-driven activation burst.
	SpikePulse SpikeType = "pulse"
	// SpikeStar marks an activation dominated by a cluster or colony center.
	SpikeStar SpikeType = "star"
	// SpikeCascade marks a cascade overlay crossing the spike threshold.
	SpikeCascade SpikeType = "cascade"
	// SpikeQuantum marks a coherence collapse in the quantum variant.
	SpikeQuantum SpikeType = "quantum"
)

// Spike is a transient event emitted when a cell crosses the spike
// threshold. It exists only within the frame that created it.
type Spike struct {
	X         int
	Y         int
	Intensity float64
	Type      SpikeType
	Age       int
}

// Connection is an edge between two simultaneously active neighbor cells.
type Connection struct {
	From     Point
	To       Point
	Strength float64
}

// Frame is one time step of generator output. Frames are immutable after
// creation and consumed in slice order.
type Frame struct {
	Cells       [][]float64
	Spikes      []Spike
	Connections []Connection
}

// Rule supplies the variant-specific half of the automaton transition.
// The engine owns the shared half: neighbor counting, the success/decay
// draw, clamping, spike emission and connection derivation.
type Rule interface {
	Name() string

	// Reset discards all entity state and re-seeds it for a grid of the
	// given size using the provided random source.
	Reset(rng *RNG, size int)

	// Advance moves entity state forward one frame before the cell pass.
	Advance(s *Step)

	// Bias returns the extra activation probability contributed to cell
	// (x, y) by the variant's entities for the current frame.
	Bias(x, y int, s *Step) float64

	// Finalize runs after the cell pass, once s.Next holds the drawn
	// values. Rules overlay entity intensity and emit entity spikes here.
	Finalize(s *Step)

	// SpikeType labels a threshold crossing at (x, y).
	SpikeType(x, y int, s *Step) SpikeType
}

// Step carries the per-frame context handed to a Rule.
type Step struct {
	// Index is the frame number within the whole run, continuing across
	// inherited generations.
	Index int
	Size  int
	Prev  *Grid
	Next  *Grid
	RNG   *RNG

	// Spikes collects entity-emitted spikes during Finalize.
	Spikes []Spike
}

// Factory constructs a Rule from an optional string-map configuration.
type Factory func(cfg map[string]string) Rule

var patterns = map[string]Factory{}

// Register adds a pattern factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	patterns[name] = f
}

// Patterns exposes the registry of available pattern factories.
func Patterns() map[string]Factory {
	return patterns
}
