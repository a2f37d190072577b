package viz

const (
	minScale = 0.5
	maxScale = 10.0
)

// Transform is the pan/zoom applied to a whole render pass: translate first,
// then scale. Scale factors are clamped to [0.5, 10] so a runaway zoom can
// never degenerate the output.
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
}

// IdentityTransform draws the grid 1:1 across the surface.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

func clampScale(s float64) float64 {
	if s < minScale {
		return minScale
	}
	if s > maxScale {
		return maxScale
	}
	return s
}

// Apply maps a point from grid-surface coordinates to output coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	sx := clampScale(t.ScaleX)
	sy := clampScale(t.ScaleY)
	return (x + t.TranslateX) * sx, (y + t.TranslateY) * sy
}
