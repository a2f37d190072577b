package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Prediction is one classified label with its softmax confidence.
type Prediction struct {
	Class      string
	Confidence float64
}

// PredictionsSurface shows the top classes as confidence bars.
type PredictionsSurface struct {
	id    string
	preds []Prediction
}

func NewPredictionsSurface(preds []Prediction) *PredictionsSurface {
	return &PredictionsSurface{
		id:    "predictions-" + uuid.NewString(),
		preds: preds,
	}
}

func (p *PredictionsSurface) ID() string          { return p.id }
func (p *PredictionsSurface) Priority() int       { return PriorityPredictions }
func (p *PredictionsSurface) Name() string        { return "Predictions" }
func (p *PredictionsSurface) Description() string { return "Top classes by confidence" }

func (p *PredictionsSurface) Render(state ViewState) string {
	if len(p.preds) == 0 {
		return "No predictions"
	}

	labelWidth := 0
	for _, pred := range p.preds {
		if len(pred.Class) > labelWidth {
			labelWidth = len(pred.Class)
		}
	}

	barWidth := state.Width - labelWidth - 12
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	for i, pred := range p.preds {
		conf := clampFloat(pred.Confidence, 0, 1)
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(state.Scheme.Heat.Hex(conf)))

		sb.WriteString(fmt.Sprintf("%d. %-*s %s %5.1f%%\n",
			i+1, labelWidth, pred.Class,
			createBar(barWidth, conf, style),
			conf*100))
	}
	return sb.String()
}

func (p *PredictionsSurface) HandleInput(string, *ViewState) bool {
	return false
}
