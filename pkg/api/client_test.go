package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRoundTrip(t *testing.T) {
	clip := []byte("RIFF....WAVEfmt ")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req EvaluateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		decoded, err := base64.StdEncoding.DecodeString(req.AudioData)
		require.NoError(t, err)
		assert.Equal(t, clip, decoded)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"predictions": [
				{"class": "dog", "confidence": 0.91},
				{"class": "rooster", "confidence": 0.05},
				{"class": "rain", "confidence": 0.02}
			],
			"visualization": {
				"layer1": {"shape": [2, 3], "values": [[0, 1, 2], [3, 4, 5]]}
			},
			"input_spectogram": {"shape": [2, 2], "values": [[-80, -40], [-20, 0]]},
			"waveform": {"values": [0.0, 0.5, -0.5], "sample_rate": 44100, "duration": 1.5}
		}`))
	}))
	defer srv.Close()

	c := NewClientFor(srv.URL)
	resp, err := c.Classify(context.Background(), clip)
	require.NoError(t, err)

	require.Len(t, resp.Predictions, 3)
	assert.Equal(t, "dog", resp.Predictions[0].Class)
	assert.InDelta(t, 0.91, resp.Predictions[0].Confidence, 1e-9)

	layer1, ok := resp.Visualization["layer1"]
	require.True(t, ok)
	assert.Equal(t, 2, layer1.Rows())
	assert.Equal(t, 3, layer1.Cols())
	assert.Equal(t, 5.0, layer1.Values[1][2])

	assert.Equal(t, 2, resp.InputSpectogram.Rows())
	assert.Equal(t, 44100, resp.Waveform.SampleRate)
	assert.InDelta(t, 1.5, resp.Waveform.Duration, 1e-9)
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model volume unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClientFor(srv.URL)
	_, err := c.Classify(context.Background(), []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "model volume unavailable")
}

func TestClassifyEmptyClip(t *testing.T) {
	c := NewClientFor("http://unused.invalid")
	_, err := c.Classify(context.Background(), nil)
	assert.Error(t, err)
}

func TestClassifyContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClientFor(srv.URL)
	_, err := c.Classify(ctx, []byte("data"))
	assert.Error(t, err)
}

func TestArray2DShapeHelpers(t *testing.T) {
	assert.Equal(t, 0, Array2D{}.Rows())
	assert.Equal(t, 0, Array2D{}.Cols())
	assert.Equal(t, 0, Array2D{Shape: []int{7}}.Cols())
	assert.Equal(t, 7, Array2D{Shape: []int{7}}.Rows())
}
