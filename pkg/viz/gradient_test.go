package viz

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientTwoStopLerp(t *testing.T) {
	g, err := NewGradient("#000000", "#ffffff")
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, g.At(0))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, g.At(1))

	mid := g.At(0.5)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.InDelta(t, 128, int(mid.G), 1)
	assert.InDelta(t, 128, int(mid.B), 1)
}

func TestGradientClampsDomain(t *testing.T) {
	g := MustGradient("#000040", "#ff0000", "#ffffff")

	assert.Equal(t, g.At(0), g.At(-5))
	assert.Equal(t, g.At(1), g.At(5))
}

func TestGradientMultiStopSegments(t *testing.T) {
	g := MustGradient("#000000", "#ff0000", "#ffffff")

	// t=0.5 sits exactly on the middle stop
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, g.At(0.5))

	// first segment interpolates red only
	quarter := g.At(0.25)
	assert.InDelta(t, 128, int(quarter.R), 1)
	assert.Equal(t, uint8(0), quarter.G)
	assert.Equal(t, uint8(0), quarter.B)
}

func TestGradientRejectsTooFewStops(t *testing.T) {
	_, err := NewGradient("#ffffff")
	assert.Error(t, err)

	_, err = NewGradient()
	assert.Error(t, err)
}

func TestGradientRejectsBadHex(t *testing.T) {
	_, err := NewGradient("#000000", "not-a-color")
	assert.Error(t, err)
}

func TestGradientHex(t *testing.T) {
	g := MustGradient("#000000", "#ffffff")

	assert.Equal(t, "#000000", g.Hex(0))
	assert.Equal(t, "#ffffff", g.Hex(1))
}
