package core

// Params holds the shared transition tunables of the engine. All pattern
// variants run on top of the same per-cell rule; only the bias term and
// the entity overlays differ between them.
type Params struct {
	// ActiveThreshold is the previous-frame value above which a cell
	// counts as an active neighbor.
	ActiveThreshold float64
	// SpikeThreshold is the new value above which a spike is emitted.
	SpikeThreshold float64
	// NeighborWeight scales the active-neighbor count into probability.
	NeighborWeight float64
	// DecayWeight scales the cell's own previous value as a penalty.
	DecayWeight float64
	// FireLow/FireHigh bound the randomized value of a firing cell.
	FireLow  float64
	FireHigh float64
	// DecayLow/DecayHigh bound the randomized decay multiplier applied
	// to a cell that did not fire.
	DecayLow  float64
	DecayHigh float64
	// MaxConnections caps the connection list per frame.
	MaxConnections int
}

// DefaultParams returns the standard engine tunables for favicon-sized
// grids.
func DefaultParams() Params {
	return Params{
		ActiveThreshold: 0.5,
		SpikeThreshold:  0.75,
		NeighborWeight:  0.08,
		DecayWeight:     0.05,
		FireLow:         0.6,
		FireHigh:        1.0,
		DecayLow:        0.85,
		DecayHigh:       0.95,
		MaxConnections:  6,
	}
}

// Engine drives a pattern Rule over a square activation grid and emits
// one Frame per step. All state lives on the Engine and its Rule; there
// are no package-level globals, so separate engines never interact.
type Engine struct {
	size   int
	params Params
	rule   Rule
	rng    *RNG

	prev *Grid
	next *Grid

	frame      int
	generation int
}

// New constructs an engine with default parameters and resets it with the
// provided seed.
func New(rule Rule, size int, seed int64) *Engine {
	return NewWithParams(rule, size, seed, DefaultParams())
}

// NewWithParams constructs an engine with explicit parameters and resets
// it with the provided seed.
func NewWithParams(rule Rule, size int, seed int64, params Params) *Engine {
	if size <= 0 {
		size = 4
	}
	e := &Engine{
		size:   size,
		params: params,
		rule:   rule,
		prev:   NewGrid(size),
		next:   NewGrid(size),
	}
	e.Reset(seed)
	return e
}

// Size returns the grid edge length.
func (e *Engine) Size() int { return e.size }

// Rule exposes the pattern rule driving this engine.
func (e *Engine) Rule() Rule { return e.rule }

// Params returns the engine tunables.
func (e *Engine) Params() Params { return e.params }

// Generation reports how many Generate calls have completed.
func (e *Engine) Generation() int { return e.generation }

// Cells returns a copy of the current activation matrix. After Generate
// it holds the final state of the run, suitable for Inherit on a
// follow-up engine.
func (e *Engine) Cells() [][]float64 { return e.prev.Matrix() }

// Reset zeroes the grid, reseeds the random source and rebuilds the
// rule's entity state.
func (e *Engine) Reset(seed int64) {
	e.rng = NewRNG(seed)
	e.prev.Clear()
	e.next.Clear()
	e.frame = 0
	e.generation = 0
	e.rule.Reset(e.rng, e.size)
}

// Inherit seeds the initial matrix from a prior run's final state scaled
// by ratio, plus uniform noise in [0, noise) per cell. Rule entities are
// untouched, so threading the same rule instance continues its cascades
// and clusters across generations.
func (e *Engine) Inherit(cells [][]float64, ratio, noise float64) {
	for y := 0; y < e.size && y < len(cells); y++ {
		row := cells[y]
		for x := 0; x < e.size && x < len(row); x++ {
			v := row[x] * ratio
			if noise > 0 {
				v += e.rng.Float64() * noise
			}
			e.prev.Set(x, y, v)
		}
	}
}

// Generate advances the automaton frameCount steps and returns exactly
// that many frames, in time order. The computation is eager and
// synchronous; repeated calls continue from the final state of the
// previous call.
func (e *Engine) Generate(frameCount int) []Frame {
	if frameCount < 0 {
		frameCount = 0
	}
	frames := make([]Frame, 0, frameCount)
	for f := 0; f < frameCount; f++ {
		frames = append(frames, e.step())
	}
	e.generation++
	return frames
}

func (e *Engine) step() Frame {
	p := e.params
	s := &Step{Index: e.frame, Size: e.size, Prev: e.prev, Next: e.next, RNG: e.rng}
	e.rule.Advance(s)

	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			prevV := e.prev.At(x, y)
			active := e.prev.ActiveNeighbors(x, y, p.ActiveThreshold)
			// Bias terms can push the probability outside [0,1];
			// clamp before the draw.
			prob := float64(active)*p.NeighborWeight - prevV*p.DecayWeight + e.rule.Bias(x, y, s)
			if e.rng.Chance(Clamp01(prob)) {
				e.next.Set(x, y, e.rng.Range(p.FireLow, p.FireHigh))
			} else {
				e.next.Set(x, y, prevV*e.rng.Range(p.DecayLow, p.DecayHigh))
			}
		}
	}

	e.rule.Finalize(s)
	spikes := s.Spikes

	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			v := e.next.At(x, y)
			if v <= p.SpikeThreshold || spikedAt(spikes, x, y) {
				continue
			}
			spikes = append(spikes, Spike{X: x, Y: y, Intensity: v, Type: e.rule.SpikeType(x, y, s)})
		}
	}

	frame := Frame{
		Cells:       e.next.Matrix(),
		Spikes:      spikes,
		Connections: deriveConnections(e.next, p.ActiveThreshold, p.MaxConnections),
	}

	e.prev, e.next = e.next, e.prev
	e.frame++
	return frame
}

func spikedAt(spikes []Spike, x, y int) bool {
	for _, sp := range spikes {
		if sp.X == x && sp.Y == y {
			return true
		}
	}
	return false
}

// deriveConnections scans all 8-neighbor cell pairs with both values
// above threshold and records one edge per unordered pair, truncated to
// max edges in scan order.
func deriveConnections(g *Grid, threshold float64, max int) []Connection {
	var conns []Connection
	n := g.N
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := g.At(x, y)
			if v <= threshold {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= n || ny < 0 || ny >= n {
						continue
					}
					// Visit each unordered pair once via index ordering.
					if ny*n+nx <= y*n+x {
						continue
					}
					nv := g.At(nx, ny)
					if nv <= threshold {
						continue
					}
					conns = append(conns, Connection{
						From:     Point{X: x, Y: y},
						To:       Point{X: nx, Y: ny},
						Strength: (v + nv) / 2,
					})
					if max > 0 && len(conns) >= max {
						return conns
					}
				}
			}
		}
	}
	return conns
}
