package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestPreviewAnalyze(t *testing.T) {
	const sampleRate = 8000
	pcm := sine(1000, sampleRate, 8192)

	p := NewPreview(sampleRate)
	err := p.Analyze(pcm, nil, make(chan struct{}))
	require.NoError(t, err)

	bins := len(p.FreqBands)
	require.Greater(t, bins, 0)
	require.Len(t, p.Power, bins)

	// Bands run low to high up to Nyquist.
	require.Equal(t, 0.0, p.FreqBands[0])
	for i := 1; i < bins; i++ {
		require.Greater(t, p.FreqBands[i], p.FreqBands[i-1])
	}
	require.Less(t, p.FreqBands[bins-1], float64(sampleRate)/2)

	// The loudest bin of a pure tone sits at the tone's frequency.
	frame := len(p.Power[0]) / 2
	peak := 0
	for bin := range p.Power {
		if p.Power[bin][frame] > p.Power[peak][frame] {
			peak = bin
		}
	}
	require.InDelta(t, 1000.0, p.FreqBands[peak], 2*float64(sampleRate)/2/float64(bins))
}

func TestPreviewAnalyzeTooShort(t *testing.T) {
	p := NewPreview(8000)
	err := p.Analyze(make([]float64, 100), nil, make(chan struct{}))
	require.Error(t, err)
}

func TestPreviewAnalyzeCancelled(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)

	p := NewPreview(8000)
	err := p.Analyze(sine(500, 8000, 1<<16), nil, cancel)
	require.Error(t, err)
}
