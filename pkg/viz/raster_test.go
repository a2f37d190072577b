package viz

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayscale() ColorFunc {
	return MustGradient("#000000", "#ffffff").At
}

func TestRenderFlipsRowZeroToBottom(t *testing.T) {
	// 2x2 grid on a 2x2 canvas: row 0 lands on the bottom pixel band,
	// row 1 on the top.
	grid := NewGrid(2, 2, [][]float64{
		{0, 10},
		{20, 30},
	})

	canvas := NewImageCanvas(2, 2)
	r := Renderer{Range: DynamicRange{Max: 30, Width: 30}, Color: grayscale()}
	r.Render(canvas, grid, IdentityTransform())

	// row 1, col 1 holds the max (normalized 1.0 -> white) and draws at the top
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, canvas.At(1, 0))
	// row 0, col 0 holds the floor (normalized 0 -> black) and draws at the bottom
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, canvas.At(0, 1))

	// the other two cells interpolate
	third := canvas.At(1, 1) // row 0, col 1: value 10 -> 1/3
	twoThirds := canvas.At(0, 0)
	assert.InDelta(t, 255.0/3, float64(third.R), 2)
	assert.InDelta(t, 2*255.0/3, float64(twoThirds.R), 2)
}

func TestRenderSkipsNaNCells(t *testing.T) {
	withNaN := NewGrid(2, 2, [][]float64{
		{1, math.NaN()},
		{3, 4},
	})
	withoutCell := NewGrid(2, 2, [][]float64{
		{1},
		{3, 4},
	})

	a := NewImageCanvas(2, 2)
	b := NewImageCanvas(2, 2)
	r := Renderer{Range: DynamicRange{Max: 4, Width: 4}, Color: grayscale()}
	r.Render(a, withNaN, IdentityTransform())
	r.Render(b, withoutCell, IdentityTransform())

	// the NaN cell contributes no pixels: identical output to a grid missing
	// that cell entirely
	assert.Equal(t, b.Image().Pix, a.Image().Pix)
	// and the untouched pixel stays zero-valued (row 0 draws at the bottom)
	assert.Equal(t, color.RGBA{}, a.At(1, 1))
}

func TestRenderEmptyGridClearsCanvas(t *testing.T) {
	canvas := NewImageCanvas(2, 2)
	canvas.FillRect(0, 0, 2, 2, color.RGBA{R: 0xff, A: 0xff})

	r := Renderer{Range: DynamicRange{Max: 1, Width: 1}, Color: grayscale()}
	r.Render(canvas, NewGrid(0, 0, nil), IdentityTransform())

	for _, p := range canvas.Image().Pix {
		require.Equal(t, uint8(0), p)
	}

	// nil grid behaves the same
	canvas.FillRect(0, 0, 2, 2, color.RGBA{R: 0xff, A: 0xff})
	r.Render(canvas, nil, IdentityTransform())
	for _, p := range canvas.Image().Pix {
		require.Equal(t, uint8(0), p)
	}
}

func TestRenderIdempotent(t *testing.T) {
	grid := NewGrid(3, 4, [][]float64{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
	})
	tr := Transform{ScaleX: 2, ScaleY: 1, TranslateX: -3}

	a := NewImageCanvas(8, 6)
	b := NewImageCanvas(8, 6)
	r := Renderer{Range: DynamicRange{Max: 11, Width: 11}, Color: grayscale()}

	r.Render(a, grid, tr)
	r.Render(b, grid, tr)
	assert.Equal(t, b.Image().Pix, a.Image().Pix)

	// re-render on the same canvas leaves no stale state behind
	r.Render(a, grid, tr)
	assert.Equal(t, b.Image().Pix, a.Image().Pix)
}

func TestRenderAppliesTranslateThenScale(t *testing.T) {
	grid := NewGrid(1, 2, [][]float64{{0, 1}})

	canvas := NewImageCanvas(4, 1)
	r := Renderer{Range: DynamicRange{Max: 1, Width: 1}, Color: grayscale()}

	// shift one cell left, then double: only the second cell remains visible,
	// stretched across the full width
	r.Render(canvas, grid, Transform{ScaleX: 2, ScaleY: 1, TranslateX: -2})

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for x := 0; x < 4; x++ {
		assert.Equal(t, white, canvas.At(x, 0), "x=%d", x)
	}
}

func TestRenderCellCanvas(t *testing.T) {
	grid := NewGrid(2, 2, [][]float64{
		{0, math.NaN()},
		{20, 30},
	})

	canvas := NewCellCanvas(2, 2)
	r := Renderer{Range: DynamicRange{Max: 30, Width: 30}, Color: grayscale()}
	r.Render(canvas, grid, IdentityTransform())

	assert.True(t, canvas.Painted(0, 1))  // row 0 col 0, bottom-left
	assert.False(t, canvas.Painted(1, 1)) // the NaN cell
	c, ok := canvas.Cell(1, 0)            // row 1 col 1, top-right
	require.True(t, ok)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)
}

func TestTransformClampsScale(t *testing.T) {
	x, _ := Transform{ScaleX: 100, ScaleY: 1}.Apply(1, 0)
	assert.Equal(t, 10.0, x)

	x, _ = Transform{ScaleX: 0.01, ScaleY: 1}.Apply(1, 0)
	assert.Equal(t, 0.5, x)
}
