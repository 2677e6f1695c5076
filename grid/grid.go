// Package grid holds the 28x28 intensity buffer behind the sketch pad and the
// brush algorithm that turns continuous pointer samples into cell intensities.
//
// The package is input-API agnostic: callers feed it positions in surface
// pixels (origin top-left) and it does the rest. All methods are synchronous
// and none of them block. A Grid is owned by exactly one event loop; callers
// that need cross-goroutine access wrap it (see package pad).
package grid

import "math"

const (
	// Cols and Rows give the fixed grid geometry.
	Cols = 28
	Rows = 28
	// Cells is the length of the flat, row-major intensity vector.
	Cells = Cols * Rows
)

// DefaultCellSize is the edge length, in surface pixels, of one cell when the
// caller does not say otherwise.
const DefaultCellSize = 14.0

// Config sets the brush geometry.
type Config struct {
	// CellSize is the edge length of one cell in surface pixels.
	// Zero or negative selects DefaultCellSize.
	CellSize float64

	// Radius is the brush radius: the maximum distance from a cell's
	// center at which a sample still marks that cell. Intensity falls off
	// linearly from 1 at the center to 0 at Radius. Zero or negative
	// selects CellSize * sqrt(2) / 2, the distance from a cell's center to
	// its corner, so a sample anywhere inside a cell always marks it.
	Radius float64
}

// Grid is the intensity buffer plus the stroke state machine.
//
// Values are kept in [0,1]. Index layout is row*Cols+col. A stroke is either
// active (drawing) or not (idle); while active the previous sample position is
// remembered so segments between sparse samples can be filled in.
type Grid struct {
	cellSize float64
	radius   float64

	cells [Cells]float64

	drawing bool
	hasLast bool
	lastX   float64
	lastY   float64
}

// New returns a zero-filled grid with cfg applied.
func New(cfg Config) *Grid {
	g := &Grid{cellSize: cfg.CellSize, radius: cfg.Radius}
	if g.cellSize <= 0 {
		g.cellSize = DefaultCellSize
	}
	if g.radius <= 0 {
		g.radius = g.cellSize * math.Sqrt2 / 2
	}
	return g
}

// CellSize returns the configured cell edge length in pixels.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Radius returns the effective brush radius in pixels.
func (g *Grid) Radius() float64 { return g.radius }

// Drawing reports whether a stroke is active.
func (g *Grid) Drawing() bool { return g.drawing }

// Begin starts a stroke at (x, y) and paints the first point.
// A Begin while a stroke is already active restarts it at the new position.
func (g *Grid) Begin(x, y float64) {
	g.drawing = true
	g.paint(x, y)
	g.lastX, g.lastY = x, y
	g.hasLast = true
}

// Move extends the active stroke to (x, y), painting evenly spaced
// sub-samples along the segment from the previous position so that fast
// pointer motion leaves no gap wider than half a cell. A Move with no active
// stroke is a no-op.
func (g *Grid) Move(x, y float64) {
	if !g.drawing {
		return
	}
	if !g.hasLast {
		g.Begin(x, y)
		return
	}
	g.segment(g.lastX, g.lastY, x, y)
	g.lastX, g.lastY = x, y
}

// End finishes the active stroke. Stray Ends (release without a press) are
// no-ops.
func (g *Grid) End() {
	g.drawing = false
	g.hasLast = false
}

// Clear zeroes every cell and forces the stroke machine back to idle.
// Callable in any state; idempotent.
func (g *Grid) Clear() {
	g.cells = [Cells]float64{}
	g.End()
}

// Values returns the intensity vector as an independent copy, row-major.
// Mutating the returned slice does not affect the grid.
func (g *Grid) Values() []float64 {
	out := make([]float64, Cells)
	copy(out, g.cells[:])
	return out
}

// At returns the intensity stored at (row, col); out-of-range returns 0.
func (g *Grid) At(row, col int) float64 {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return 0
	}
	return g.cells[row*Cols+col]
}

// paint applies the brush at one sample position. Only the cell containing
// the sample is written; the intensity is the linear falloff of the distance
// from the sample to that cell's center, merged with the stored value via max
// so repeated passes darken and never lighten.
func (g *Grid) paint(x, y float64) {
	col := int(math.Floor(x / g.cellSize))
	row := int(math.Floor(y / g.cellSize))
	if col < 0 || col >= Cols || row < 0 || row >= Rows {
		return
	}

	cx := (float64(col) + 0.5) * g.cellSize
	cy := (float64(row) + 0.5) * g.cellSize
	dist := math.Hypot(x-cx, y-cy)

	intensity := 1 - dist/g.radius
	if intensity <= 0 {
		return
	}
	if intensity > 1 {
		intensity = 1
	}

	i := row*Cols + col
	if intensity > g.cells[i] {
		g.cells[i] = intensity
	}
}

// segment paints inclusive sub-samples from (x0, y0) to (x1, y1), stepping no
// further than half a cell between samples.
func (g *Grid) segment(x0, y0, x1, y1 float64) {
	length := math.Hypot(x1-x0, y1-y0)
	steps := int(math.Ceil(length / (g.cellSize / 2)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		g.paint(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
}
