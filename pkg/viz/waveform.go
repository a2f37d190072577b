package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const waveformMaxHeight = 40

// WaveformSurface draws the downsampled waveform the inference endpoint
// returns with every classification, so the clip that was judged is the clip
// on screen.
type WaveformSurface struct {
	id         string
	data       []float64
	sampleRate int
	duration   time.Duration
	maxAmp     float64
}

func NewWaveformSurface(data []float64, sampleRate int, duration time.Duration) *WaveformSurface {
	maxAmp := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > maxAmp {
			maxAmp = a
		}
	}
	if maxAmp == 0 {
		maxAmp = 1
	}

	return &WaveformSurface{
		id:         "waveform-" + uuid.NewString(),
		data:       data,
		sampleRate: sampleRate,
		duration:   duration,
		maxAmp:     maxAmp,
	}
}

func (w *WaveformSurface) ID() string          { return w.id }
func (w *WaveformSurface) Priority() int       { return PriorityWaveform }
func (w *WaveformSurface) Name() string        { return "Waveform" }
func (w *WaveformSurface) Description() string { return "Amplitude over time" }

func (w *WaveformSurface) Render(state ViewState) string {
	if len(w.data) == 0 {
		return "No waveform data"
	}

	var sb strings.Builder

	availWidth := state.Width
	if availWidth < 8 {
		availWidth = 8
	}
	availHeight := clamp(state.Height-4, 3, waveformMaxHeight)

	zoom := clampFloat(state.Zoom, minScale, maxScale)
	samplesPerColumn := int(float64(len(w.data)) / float64(availWidth) / zoom)
	if samplesPerColumn < 1 {
		samplesPerColumn = 1
	}

	startSample := int(state.Pan * float64(samplesPerColumn))
	startSample = clamp(startSample, 0, len(w.data)-1)

	sb.WriteString(w.renderTimeAxis(availWidth, samplesPerColumn, startSample))
	sb.WriteString("\n")

	display := make([][]string, availHeight)
	for i := range display {
		display[i] = make([]string, availWidth)
		for j := range display[i] {
			display[i][j] = " "
		}
	}

	centerY := availHeight / 2
	style := lipgloss.NewStyle().Foreground(state.Scheme.Primary)

	for x := 0; x < availWidth; x++ {
		startIdx := startSample + x*samplesPerColumn
		if startIdx >= len(w.data) {
			break
		}

		var minVal, maxVal float64
		for i := 0; i < samplesPerColumn && startIdx+i < len(w.data); i++ {
			val := w.data[startIdx+i]
			if val < minVal {
				minVal = val
			}
			if val > maxVal {
				maxVal = val
			}
		}

		minY := clamp(centerY+int((minVal/w.maxAmp)*float64(availHeight/2-1)), 0, availHeight-1)
		maxY := clamp(centerY+int((maxVal/w.maxAmp)*float64(availHeight/2-1)), 0, availHeight-1)

		for y := minY; y <= maxY; y++ {
			switch {
			case y == centerY:
				display[y][x] = "─"
			case y == minY || y == maxY:
				display[y][x] = "█"
			default:
				display[y][x] = "│"
			}
		}
	}

	for y := 0; y < availHeight; y++ {
		for x := 0; x < availWidth; x++ {
			if display[y][x] != " " {
				sb.WriteString(style.Render(display[y][x]))
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	info := fmt.Sprintf(" Zoom: %.2fx | %s | %d Hz ", zoom, formatDuration(w.duration), w.sampleRate)
	sb.WriteString(lipgloss.NewStyle().Foreground(state.Scheme.Text).Render(info))

	return sb.String()
}

func (w *WaveformSurface) renderTimeAxis(width, samplesPerColumn, startSample int) string {
	var sb strings.Builder

	secPerSample := w.duration.Seconds() / float64(len(w.data))

	numMarkers := width / 8
	if numMarkers < 1 {
		numMarkers = 1
	}

	for i := 0; i < numMarkers; i++ {
		col := i * width / numMarkers
		sample := startSample + col*samplesPerColumn
		if sample >= len(w.data) {
			break
		}
		tSec := float64(sample) * secPerSample
		timeStr := fmt.Sprintf("%02d:%02d", int(tSec)/60, int(tSec)%60)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%-8s", timeStr))
			continue
		}
		padding := col - i*8
		if padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}
		sb.WriteString(fmt.Sprintf("%-8s", timeStr))
	}

	return sb.String()
}

func (w *WaveformSurface) HandleInput(string, *ViewState) bool {
	return false
}
