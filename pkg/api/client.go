// Package api talks to the remote audio-classification endpoint. The model
// itself is a black box behind one HTTP POST; this client only shuttles the
// clip up and the numeric results back.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultEndpoint is the deployed inference service. Override with the
// SOUNDSCOPE_ENDPOINT environment variable or the endpoint command.
const DefaultEndpoint = "https://soundscope-inference.modal.run/evaluate"

// EvaluateRequest carries the clip as base64-encoded bytes of the original
// file (wav or mp3); decoding and resampling happen server-side.
type EvaluateRequest struct {
	AudioData string `json:"audio_data"`
}

// Prediction is one classified label with its softmax confidence.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// Array2D is a shape/values pair: a spectrogram or a channel-averaged
// feature-map block.
type Array2D struct {
	Shape  []int       `json:"shape"`
	Values [][]float64 `json:"values"`
}

// Rows and Cols read the declared shape, zero when absent.
func (a Array2D) Rows() int {
	if len(a.Shape) < 1 {
		return 0
	}
	return a.Shape[0]
}

func (a Array2D) Cols() int {
	if len(a.Shape) < 2 {
		return 0
	}
	return a.Shape[1]
}

// Waveform is the downsampled time-domain signal echoed back with the
// classification.
type Waveform struct {
	Values     []float64 `json:"values"`
	SampleRate int       `json:"sample_rate"`
	Duration   float64   `json:"duration"`
}

// EvaluateResponse is the full classification result. The misspelled
// input_spectogram key is the upstream service's wire name.
type EvaluateResponse struct {
	Predictions     []Prediction       `json:"predictions"`
	Visualization   map[string]Array2D `json:"visualization"`
	InputSpectogram Array2D            `json:"input_spectogram"`
	Waveform        Waveform           `json:"waveform"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client for the default endpoint, honoring the
// SOUNDSCOPE_ENDPOINT override.
func NewClient() *Client {
	endpoint := DefaultEndpoint
	if env := os.Getenv("SOUNDSCOPE_ENDPOINT"); env != "" {
		endpoint = env
	}
	return NewClientFor(endpoint)
}

// NewClientFor builds a client for a specific endpoint URL.
func NewClientFor(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Endpoint returns the URL classification requests go to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SetEndpoint repoints the client, e.g. from the endpoint command.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// Classify uploads the raw clip bytes and returns the parsed classification
// result. Inference on a cold model can take a while; cancel via ctx.
func (c *Client) Classify(ctx context.Context, clip []byte) (*EvaluateResponse, error) {
	if len(clip) == 0 {
		return nil, fmt.Errorf("empty clip")
	}

	payload, err := json.Marshal(EvaluateRequest{
		AudioData: base64.StdEncoding.EncodeToString(clip),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var result EvaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}
