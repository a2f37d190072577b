package viz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridAt(t *testing.T) {
	g := NewGrid(2, 3, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})

	v, ok := g.At(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = g.At(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 6.0, v)

	_, ok = g.At(2, 0)
	assert.False(t, ok)
	_, ok = g.At(0, 3)
	assert.False(t, ok)
	_, ok = g.At(-1, 0)
	assert.False(t, ok)
}

func TestGridRaggedRowsReadAsMissing(t *testing.T) {
	g := NewGrid(2, 3, [][]float64{
		{1, 2, 3},
		{4},
	})

	_, ok := g.At(1, 1)
	assert.False(t, ok)
	v, ok := g.At(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestGridNonFiniteCellsAreMissing(t *testing.T) {
	g := NewGrid(1, 3, [][]float64{
		{math.NaN(), math.Inf(1), 7},
	})

	_, ok := g.At(0, 0)
	assert.False(t, ok)
	_, ok = g.At(0, 1)
	assert.False(t, ok)
	v, ok := g.At(0, 2)
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestGridMaxSkipsNonFinite(t *testing.T) {
	g := GridFromValues([][]float64{
		{-3, math.NaN()},
		{math.Inf(1), -1},
	})

	assert.Equal(t, -1.0, g.Max())
}

func TestGridEmpty(t *testing.T) {
	assert.True(t, NewGrid(0, 0, nil).Empty())
	assert.True(t, NewGrid(0, 5, nil).Empty())
	assert.False(t, NewGrid(1, 1, [][]float64{{1}}).Empty())
	assert.Equal(t, 0.0, NewGrid(0, 0, nil).Max())
}

func TestGridFromValuesInfersShape(t *testing.T) {
	g := GridFromValues([][]float64{
		{1, 2},
		{3, 4, 5},
	})

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
}

func TestGridNegativeShapePanics(t *testing.T) {
	assert.Panics(t, func() { NewGrid(-1, 3, nil) })
	assert.Panics(t, func() { NewGrid(3, -1, nil) })
}
