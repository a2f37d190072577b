package viz

import (
	"fmt"
	"math"
)

// Grid is a rectangular 2D block of numbers: a mel spectrogram, a CNN feature
// map, anything the inference endpoint ships as a shape/values pair. It is
// immutable once built; renderers read it, they never write it.
type Grid struct {
	values [][]float64
	rows   int
	cols   int
}

// NewGrid builds a grid with the given shape. Ragged or short rows are kept
// as-is; cells a row does not cover read back as missing and are simply not
// drawn. Negative dimensions are a caller bug and panic.
func NewGrid(rows, cols int, values [][]float64) *Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("viz: negative grid shape %dx%d", rows, cols))
	}
	return &Grid{values: values, rows: rows, cols: cols}
}

// GridFromValues infers the shape from the data itself, using the widest row.
func GridFromValues(values [][]float64) *Grid {
	cols := 0
	for _, row := range values {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return &Grid{values: values, rows: len(values), cols: cols}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Empty reports whether there is nothing to draw.
func (g *Grid) Empty() bool { return g.rows == 0 || g.cols == 0 }

// At returns the cell value. ok is false for out-of-shape indices, cells a
// short row does not cover, and non-finite values.
func (g *Grid) At(row, col int) (float64, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, false
	}
	if row >= len(g.values) || col >= len(g.values[row]) {
		return 0, false
	}
	v := g.values[row][col]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Max returns the largest finite value, or 0 for a grid with none. It is the
// usual anchor for the dynamic-range window.
func (g *Grid) Max() float64 {
	max := math.Inf(-1)
	found := false
	for _, row := range g.values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v > max {
				max = v
				found = true
			}
		}
	}
	if !found {
		return 0
	}
	return max
}
