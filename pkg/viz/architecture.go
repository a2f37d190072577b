package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// ArchitectureSurface sketches the classifier network as a stack of stages,
// sized by the activation shapes the endpoint reported. A terminal rendition
// of the dashboard's architecture diagram.
type ArchitectureSurface struct {
	id     string
	stages []LayerActivation
}

// NewArchitectureSurface keeps only the top-level stages (layer1..layerN),
// skipping every block-internal map.
func NewArchitectureSurface(layers map[string]*Grid) *ArchitectureSurface {
	names := make([]string, 0, len(layers))
	for name := range layers {
		if strings.Contains(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	stages := make([]LayerActivation, 0, len(names))
	for _, name := range names {
		if g := layers[name]; g != nil {
			stages = append(stages, LayerActivation{Name: name, Grid: g})
		}
	}
	return &ArchitectureSurface{
		id:     "architecture-" + uuid.NewString(),
		stages: stages,
	}
}

func (a *ArchitectureSurface) ID() string          { return a.id }
func (a *ArchitectureSurface) Priority() int       { return PriorityArchitecture }
func (a *ArchitectureSurface) Name() string        { return "Architecture" }
func (a *ArchitectureSurface) Description() string { return "Network stages and activation shapes" }

func (a *ArchitectureSurface) Render(state ViewState) string {
	if len(a.stages) == 0 {
		return "No architecture data"
	}

	maxCells := 0
	for _, s := range a.stages {
		if cells := s.Grid.Rows() * s.Grid.Cols(); cells > maxCells {
			maxCells = cells
		}
	}
	if maxCells == 0 {
		maxCells = 1
	}

	barWidth := state.Width - 28
	if barWidth < 10 {
		barWidth = 10
	}

	var sb strings.Builder
	sb.WriteString("input ─┐\n")
	for i, s := range a.stages {
		frac := float64(s.Grid.Rows()*s.Grid.Cols()) / float64(maxCells)
		t := float64(i) / float64(len(a.stages))
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(state.Scheme.Heat.Hex(t)))

		sb.WriteString(fmt.Sprintf("%8s %s %dx%d\n",
			s.Name,
			createBar(barWidth, frac, style),
			s.Grid.Rows(), s.Grid.Cols()))
	}
	sb.WriteString("         └─ avgpool → fc → softmax\n")
	return sb.String()
}

func (a *ArchitectureSurface) HandleInput(string, *ViewState) bool {
	return false
}
