package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// LayerActivation is one CNN layer's channel-averaged activation block.
type LayerActivation struct {
	Name string
	Grid *Grid
}

// FeatureMapSurface cycles through the per-layer activation heatmaps the
// inference endpoint returns alongside its predictions.
type FeatureMapSurface struct {
	id     string
	layers []LayerActivation
	idx    int
}

// NewFeatureMapSurface orders the layers by name so layer1 leads and the
// block internals of each stage group together.
func NewFeatureMapSurface(layers map[string]*Grid) *FeatureMapSurface {
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	sort.Strings(names)

	acts := make([]LayerActivation, 0, len(names))
	for _, name := range names {
		if g := layers[name]; g != nil && !g.Empty() {
			acts = append(acts, LayerActivation{Name: name, Grid: g})
		}
	}
	return &FeatureMapSurface{
		id:     "featuremap-" + uuid.NewString(),
		layers: acts,
	}
}

func (f *FeatureMapSurface) ID() string    { return f.id }
func (f *FeatureMapSurface) Priority() int { return PriorityFeatureMap }
func (f *FeatureMapSurface) Name() string  { return "Feature Maps" }
func (f *FeatureMapSurface) Description() string {
	return "Per-layer CNN activations, [ and ] switch layers"
}

// Layer returns the currently selected layer.
func (f *FeatureMapSurface) Layer() (LayerActivation, bool) {
	if len(f.layers) == 0 {
		return LayerActivation{}, false
	}
	return f.layers[f.idx], true
}

func (f *FeatureMapSurface) Render(state ViewState) string {
	layer, ok := f.Layer()
	if !ok {
		return "No feature maps in response"
	}

	graphHeight := clamp(state.Height-4, 4, 50)
	graphWidth := state.Width - 2
	if graphWidth < 8 {
		graphWidth = 8
	}

	canvas := NewCellCanvas(graphWidth, graphHeight)
	cellW := float64(graphWidth) / float64(layer.Grid.Cols())

	r := Renderer{
		Range: DynamicRange{Max: layer.Grid.Max(), Width: activationRangeWidth(layer.Grid)},
		Color: state.Scheme.Heat.At,
	}
	r.Render(canvas, layer.Grid, Transform{
		ScaleX:     clampFloat(state.Zoom, minScale, maxScale),
		ScaleY:     1,
		TranslateX: -state.Pan * cellW,
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d/%d)  %dx%d\n",
		layer.Name, f.idx+1, len(f.layers), layer.Grid.Rows(), layer.Grid.Cols()))
	sb.WriteString(canvas.String())
	return sb.String()
}

func (f *FeatureMapSurface) HandleInput(key string, state *ViewState) bool {
	if len(f.layers) == 0 {
		return false
	}
	switch key {
	case "]", "next-layer":
		f.idx = (f.idx + 1) % len(f.layers)
	case "[", "prev-layer":
		f.idx = (f.idx - 1 + len(f.layers)) % len(f.layers)
	default:
		return false
	}
	state.Pan = 0
	return true
}

// activationRangeWidth spans the full value range of the layer so both the
// quietest and loudest activations stay visible. Raw activations are not dB
// scaled, unlike the spectrogram.
func activationRangeWidth(g *Grid) float64 {
	max := g.Max()
	min := max
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if v, ok := g.At(row, col); ok && v < min {
				min = v
			}
		}
	}
	if max == min {
		return 1
	}
	return max - min
}
