package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// TUI wraps our Bubble Tea program.
type TUI struct {
	program *tea.Program
}

// New returns a new TUI handle
func New() *TUI {
	return &TUI{}
}

// Start runs the TUI main loop
func (t *TUI) Start() error {
	model := NewModel()

	// Seed dimensions before the first WindowSizeMsg arrives so the
	// visualization manager never renders at zero size.
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		model.width = w
		model.height = h
		model.commander.GetProcessor().Viz().SetDimensions(w, h-6)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	t.program = p
	_, err := p.Run()
	return err
}
