package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBounds(t *testing.T) {
	r := DynamicRange{Max: 0, Width: 80}

	for _, v := range []float64{-200, -80.0001, -80, -40, -1, 0} {
		got := r.Normalize(v)
		assert.GreaterOrEqual(t, got, 0.0, "value %v", v)
		assert.LessOrEqual(t, got, 1.0, "value %v", v)
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	r := DynamicRange{Max: 0, Width: 80}

	assert.Equal(t, 1.0, r.Normalize(0))
	assert.Equal(t, 0.0, r.Normalize(-80))
	assert.Equal(t, 0.0, r.Normalize(-500)) // below the floor clamps, no negatives
	assert.InDelta(t, 0.5, r.Normalize(-40), 1e-12)
}

func TestNormalizeZeroWidthWindow(t *testing.T) {
	r := DynamicRange{Max: 10, Width: 0}

	assert.Equal(t, 0.0, r.Normalize(10))
	assert.Equal(t, 0.0, r.Normalize(-3))
	assert.Equal(t, 0.0, r.Normalize(1e9))
}

func TestNormalizeDeterministic(t *testing.T) {
	r := DynamicRange{Max: 30, Width: 30}

	first := r.Normalize(10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Normalize(10))
	}
	assert.InDelta(t, 1.0/3.0, first, 1e-12)
}
