package viz

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient maps a normalized scalar to a color along evenly spaced stops.
// Interpolation is piecewise-linear per RGB channel between the two nearest
// stops; with exactly two stops this is a plain lerp.
type Gradient struct {
	stops []colorful.Color
}

// NewGradient parses hex stops ("#rrggbb") into a gradient. At least two
// stops are required.
func NewGradient(hexStops ...string) (Gradient, error) {
	if len(hexStops) < 2 {
		return Gradient{}, fmt.Errorf("gradient needs at least 2 stops, got %d", len(hexStops))
	}
	stops := make([]colorful.Color, len(hexStops))
	for i, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			return Gradient{}, fmt.Errorf("bad gradient stop %q: %w", h, err)
		}
		stops[i] = c
	}
	return Gradient{stops: stops}, nil
}

// MustGradient is NewGradient for compile-time stop lists.
func MustGradient(hexStops ...string) Gradient {
	g, err := NewGradient(hexStops...)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the gradient color for t. Out-of-domain values are clamped to
// [0,1], never rejected.
func (g Gradient) At(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(g.stops)-1)
	lo := int(pos)
	if lo >= len(g.stops)-1 {
		lo = len(g.stops) - 2
	}
	frac := pos - float64(lo)

	c := g.stops[lo].BlendRgb(g.stops[lo+1], frac)
	r, gg, b := c.RGB255()
	return color.RGBA{R: r, G: gg, B: b, A: 0xff}
}

// Hex returns the gradient color for t as "#rrggbb", for terminal styles.
func (g Gradient) Hex(t float64) string {
	c := g.At(t)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
