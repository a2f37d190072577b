package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"soundscope/pkg/api"
	"soundscope/pkg/viz"
)

func writeClip(t *testing.T) string {
	t.Helper()
	samples := make([]int, 8000)
	for i := range samples {
		samples[i] = (i % 200) * 100
	}
	data := makeWAV(t, 8000, 1, samples)

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestProcessorLoadBuildsPreview(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.Load(writeClip(t)))
	p.WaitForAnalysis()

	require.Equal(t, StateComplete, p.GetStatus().State)
	require.NotNil(t, p.GetMetadata())

	pcm, sampleRate := p.GetPCM()
	require.NotEmpty(t, pcm)
	require.Equal(t, 8000, sampleRate)

	require.NoError(t, p.Viz().SetMode(viz.PreviewMode))
	p.Viz().SetVisible(true)
	require.Contains(t, p.Viz().Render(), "Preview")
}

func TestProcessorApplyClassification(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.Load(writeClip(t)))
	p.WaitForAnalysis()

	require.NoError(t, p.Viz().SetMode(viz.PreviewMode))
	p.Viz().SetVisible(true)

	resp := &api.EvaluateResponse{
		Predictions: []api.Prediction{
			{Class: "dog", Confidence: 0.71},
			{Class: "rooster", Confidence: 0.14},
		},
		InputSpectogram: api.Array2D{
			Shape:  []int{2, 3},
			Values: [][]float64{{1, 2, 3}, {4, 5, 6}},
		},
		Visualization: map[string]api.Array2D{
			"layer1": {Shape: []int{2, 2}, Values: [][]float64{{1, 2}, {3, 4}}},
		},
		Waveform: api.Waveform{
			Values:     []float64{0, 0.5, -0.5, 0},
			SampleRate: 8000,
			Duration:   1,
		},
	}
	require.NoError(t, p.ApplyClassification(resp))

	// The response spectrogram outranks the preview and takes the slot.
	require.Equal(t, viz.SpectrogramMode, p.Viz().CurrentMode())
	out := p.Viz().Render()
	require.Contains(t, out, "Spectrogram")
	require.NotContains(t, out, "waiting for render slot")

	require.NotNil(t, p.GetResult())
}

func TestProcessorApplyClassificationNil(t *testing.T) {
	p := NewProcessor()
	require.Error(t, p.ApplyClassification(nil))
}

func TestProcessorUnload(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.Load(writeClip(t)))
	p.WaitForAnalysis()

	p.Unload()
	require.Nil(t, p.GetCurrentFile())
	require.Nil(t, p.GetMetadata())
	require.Equal(t, StateIdle, p.GetStatus().State)
	require.Contains(t, p.Viz().Render(), "No visualization available")
}
