package viz

import "image/color"

// ColorFunc maps a normalized value in [0,1] to a color.
type ColorFunc func(t float64) color.RGBA

// Renderer paints a Grid onto a Canvas, one rectangle per cell. Row 0 always
// lands at the bottom of the surface: spectrogram-style data has frequency
// increasing upward and the flip is a fixed rule, not an option. The renderer
// keeps no state between calls, so it is safe to re-run on every resize or
// transform change.
type Renderer struct {
	Range DynamicRange
	Color ColorFunc
}

// Render clears the canvas and paints every finite cell of the grid under the
// transform. Missing, NaN, and infinite cells draw nothing. An empty grid
// just clears the canvas.
func (r Renderer) Render(canvas Canvas, grid *Grid, t Transform) {
	canvas.Clear()
	if grid == nil || grid.Empty() {
		return
	}

	width, height := canvas.Size()
	if width <= 0 || height <= 0 {
		return
	}

	rows := grid.Rows()
	cols := grid.Cols()
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	for row := 0; row < rows; row++ {
		// row 0 at the bottom band
		y := float64(rows-row-1) * cellH
		for col := 0; col < cols; col++ {
			v, ok := grid.At(row, col)
			if !ok {
				continue
			}
			x := float64(col) * cellW

			x0, y0 := t.Apply(x, y)
			x1, y1 := t.Apply(x+cellW, y+cellH)
			canvas.FillRect(x0, y0, x1-x0, y1-y0, r.Color(r.Range.Normalize(v)))
		}
	}
}
