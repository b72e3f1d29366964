package core

// Grid stores a square activation matrix in row-major order. Values are
// kept in [0,1] by the engine; Set clamps defensively.
type Grid struct {
	N    int
	data []float64
}

// NewGrid allocates an n×n grid of zeros.
func NewGrid(n int) *Grid {
	if n <= 0 {
		n = 1
	}
	return &Grid{N: n, data: make([]float64, n*n)}
}

// At returns the value at (x, y). Coordinates outside the grid read as 0.
func (g *Grid) At(x, y int) float64 {
	if x < 0 || x >= g.N || y < 0 || y >= g.N {
		return 0
	}
	return g.data[y*g.N+x]
}

// Set writes a clamped value at (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, v float64) {
	if x < 0 || x >= g.N || y < 0 || y >= g.N {
		return
	}
	g.data[y*g.N+x] = Clamp01(v)
}

// Values exposes the backing slice for direct iteration.
func (g *Grid) Values() []float64 { return g.data }

// ActiveNeighbors counts the cells in the 8-neighborhood of (x, y) whose
// value exceeds threshold. Cells outside the grid are not counted.
func (g *Grid) ActiveNeighbors(x, y int, threshold float64) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= g.N || ny < 0 || ny >= g.N {
				continue
			}
			if g.data[ny*g.N+nx] > threshold {
				count++
			}
		}
	}
	return count
}

// CopyFrom overwrites this grid with src, scaling every value by ratio.
func (g *Grid) CopyFrom(src *Grid, ratio float64) {
	n := len(g.data)
	if len(src.data) < n {
		n = len(src.data)
	}
	for i := 0; i < n; i++ {
		g.data[i] = Clamp01(src.data[i] * ratio)
	}
}

// Matrix returns a fresh [][]float64 copy indexed as [y][x], suitable for
// embedding in an immutable Frame.
func (g *Grid) Matrix() [][]float64 {
	out := make([][]float64, g.N)
	for y := 0; y < g.N; y++ {
		row := make([]float64, g.N)
		copy(row, g.data[y*g.N:(y+1)*g.N])
		out[y] = row
	}
	return out
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Clamp01 clamps v to the [0,1] activation range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
