package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// defaultRangeWidth is the dB window compressed into the color scale.
const defaultRangeWidth = 80.0

// HeatmapSurface renders one Grid as a colored heatmap through the raster
// pipeline. The remote mel spectrogram and the local preview are both
// heatmaps; they differ only in name, priority, and axis labeling.
type HeatmapSurface struct {
	id       string
	name     string
	desc     string
	priority int

	grid      *Grid
	rng       DynamicRange
	freqBands []float64 // optional row labels, low to high
}

// NewSpectrogramSurface wraps the authoritative spectrogram returned by the
// inference endpoint. freqBands may be nil when the service does not report
// center frequencies.
func NewSpectrogramSurface(grid *Grid, freqBands []float64) *HeatmapSurface {
	return &HeatmapSurface{
		id:        "spectrogram-" + uuid.NewString(),
		name:      "Spectrogram",
		desc:      "Mel spectrogram from the inference service, dB scale",
		priority:  PrioritySpectrogram,
		grid:      grid,
		rng:       DynamicRange{Max: grid.Max(), Width: defaultRangeWidth},
		freqBands: freqBands,
	}
}

// NewPreviewSurface wraps the locally computed preview spectrogram shown
// while classification is still in flight.
func NewPreviewSurface(grid *Grid, freqBands []float64) *HeatmapSurface {
	return &HeatmapSurface{
		id:        "preview-" + uuid.NewString(),
		name:      "Preview",
		desc:      "Local preview spectrogram (awaiting classification)",
		priority:  PriorityPreview,
		grid:      grid,
		rng:       DynamicRange{Max: grid.Max(), Width: defaultRangeWidth},
		freqBands: freqBands,
	}
}

func (h *HeatmapSurface) ID() string          { return h.id }
func (h *HeatmapSurface) Priority() int       { return h.priority }
func (h *HeatmapSurface) Name() string        { return h.name }
func (h *HeatmapSurface) Description() string { return h.desc }

func (h *HeatmapSurface) Render(state ViewState) string {
	if h.grid == nil || h.grid.Empty() {
		return "No spectrogram data"
	}

	graphHeight := state.Height - 4
	graphHeight = clamp(graphHeight, 4, 50)

	freqMargin := 8
	graphWidth := state.Width - freqMargin
	if graphWidth < 8 {
		graphWidth = 8
	}

	canvas := NewCellCanvas(graphWidth, graphHeight)
	h.renderTo(canvas, state)

	var sb strings.Builder
	lines := strings.Split(canvas.String(), "\n")
	rows := h.grid.Rows()
	for i, line := range lines {
		sb.WriteString(h.freqLabel(i, len(lines), rows))
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat(" ", freqMargin))
	sb.WriteString(h.renderLegend(state.Scheme))
	return sb.String()
}

// renderTo runs the raster pipeline onto any canvas; split out so tests can
// paint into a pixel canvas.
func (h *HeatmapSurface) renderTo(canvas Canvas, state ViewState) {
	width, _ := canvas.Size()
	cellW := float64(width) / float64(h.grid.Cols())

	r := Renderer{Range: h.rng, Color: state.Scheme.Heat.At}
	r.Render(canvas, h.grid, Transform{
		ScaleX:     clampFloat(state.Zoom, minScale, maxScale),
		ScaleY:     1,
		TranslateX: -state.Pan * cellW,
	})
}

// freqLabel formats the axis label for a display row. Row 0 of the grid sits
// at the bottom, so the top line shows the highest band.
func (h *HeatmapSurface) freqLabel(line, totalLines, rows int) string {
	if len(h.freqBands) == 0 || totalLines == 0 {
		return strings.Repeat(" ", 8)
	}
	frac := float64(totalLines-1-line) / float64(totalLines)
	idx := int(frac * float64(len(h.freqBands)-1))
	idx = clamp(idx, 0, len(h.freqBands)-1)

	freq := h.freqBands[idx]
	if freq >= 1000 {
		return fmt.Sprintf("%5.1fk ", freq/1000)
	}
	return fmt.Sprintf("%6.0f ", freq)
}

func (h *HeatmapSurface) renderLegend(scheme Theme) string {
	var sb strings.Builder
	sb.WriteString("dB: ")
	steps := 16
	for i := 0; i < steps; i++ {
		hex := scheme.Heat.Hex(float64(i) / float64(steps-1))
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(hex))
		sb.WriteString(style.Render(" "))
	}
	sb.WriteString(" (quiet → loud)")
	return sb.String()
}

func (h *HeatmapSurface) HandleInput(string, *ViewState) bool {
	return false
}
