package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"soundscope/internal/types"
	"soundscope/pkg/api"
	"soundscope/pkg/viz"
)

// classifierResponse is a minimal service result carrying every surface the
// processor builds from a classification.
func classifierResponse() *api.EvaluateResponse {
	return &api.EvaluateResponse{
		Predictions: []api.Prediction{
			{Class: "dog", Confidence: 0.82},
			{Class: "rain", Confidence: 0.11},
		},
		InputSpectogram: api.Array2D{
			Shape:  []int{2, 3},
			Values: [][]float64{{0, 1, 2}, {3, 4, 5}},
		},
		Waveform: api.Waveform{
			Values:     []float64{0, 0.5, -0.5, 0.25},
			SampleRate: 8000,
			Duration:   0.5,
		},
	}
}

func TestUpdateClassificationFailureStaysInConsole(t *testing.T) {
	m := NewModel()
	defer m.restoreCancel()

	next, cmd := m.Update(types.ClassifiedMsg{Err: errors.New("endpoint unreachable")})
	m = next.(AudioModel)

	require.Nil(t, cmd)
	require.Equal(t, ModeFull, m.uiMode)
	require.False(t, m.loadingState.IsLoading)
	require.Contains(t, m.mainOutput, "Classification failed")
	require.Contains(t, m.mainOutput, "endpoint unreachable")

	// A failed request must read as a failure, not as an empty viewport and
	// not as a surface waiting on the render slot.
	view := m.commander.GetProcessor().Viz().Render()
	require.Contains(t, view, "No visualization available")
	require.NotContains(t, view, "waiting for render slot")
	require.NotContains(t, m.mainOutput, "No visualization available")
}

func TestUpdateClassificationSuccessEntersVizMode(t *testing.T) {
	m := NewModel()
	defer m.restoreCancel()

	next, _ := m.Update(types.ClassifiedMsg{Resp: classifierResponse()})
	m = next.(AudioModel)

	require.Equal(t, ModeViz, m.uiMode)
	require.Contains(t, m.mainOutput, "Top predictions:")
	require.Contains(t, m.mainOutput, "dog")

	view := m.commander.GetProcessor().Viz().Render()
	require.Contains(t, view, "Spectrogram")
	require.NotContains(t, view, "No visualization available")
	require.NotContains(t, view, "waiting for render slot")
}

func TestUpdateForwardsRestorationEvents(t *testing.T) {
	m := NewModel()
	defer m.restoreCancel()

	next, _ := m.Update(types.ClassifiedMsg{Resp: classifierResponse()})
	m = next.(AudioModel)

	// Switching down to the waveform gets denied while the spectrogram holds
	// the slot; releasing the spectrogram then promotes the waveform and
	// announces a restoration to subscribers.
	manager := m.commander.GetProcessor().Viz()
	require.NoError(t, manager.SetMode(viz.WaveformMode))

	var id string
	select {
	case id = <-m.restoreCh:
	case <-time.After(time.Second):
		t.Fatal("expected a restoration event after the slot was released")
	}

	next, cmd := m.Update(types.VizRestoredMsg{ID: id})
	m = next.(AudioModel)
	require.NotNil(t, cmd, "expected the restoration listener to re-arm")

	view := manager.Render()
	require.Contains(t, view, "Waveform")
	require.NotContains(t, view, "waiting for render slot")
	require.NotContains(t, view, "paused: render slot released")
}
