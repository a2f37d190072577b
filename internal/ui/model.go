package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"soundscope/internal/commands"
	"soundscope/internal/types"
)

type UIMode int

const (
	ModeFull UIMode = iota
	ModeMini
	ModeViz
)

type AudioModel struct {
	input          textinput.Model
	viewport       viewport.Model
	commander      *commands.Commander
	progress       progress.Model
	spinner        spinner.Model
	style          lipgloss.Style
	ready          bool
	width          int
	height         int
	mainOutput     string
	tabOutput      string
	lastUpdateTime time.Time
	history        []string
	historyPos     int
	tabState       *TabState
	searchMode     bool
	searchQuery    string
	exitPrompt     bool
	loadingState   types.LoadingState
	uiMode         UIMode
	shortcuts      map[string]string

	restoreCh     <-chan string
	restoreCancel func()
}

func (m AudioModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		spinner.Tick,
		m.listenRestorations(),
	)
}

// listenRestorations forwards render-slot restoration events into the update
// loop so the affected surface can re-register.
func (m AudioModel) listenRestorations() tea.Cmd {
	ch := m.restoreCh
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return types.VizRestoredMsg{ID: id}
	}
}

func NewModel() AudioModel {
	input := textinput.New()
	input.Placeholder = "Enter command (type 'help' for list)"
	input.Focus()
	input.CharLimit = 256
	input.Width = 80

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	// Define keyboard shortcuts
	shortcuts := map[string]string{
		"ctrl+q":     "quit",
		"ctrl+p":     "play",
		"ctrl+s":     "stop",
		"ctrl+space": "pause",
		"ctrl+l":     "clear",
		"ctrl+m":     "toggle-mode",
		"ctrl+k":     "classify",
	}

	commander := commands.NewCommander()
	restoreCh, restoreCancel := commander.GetProcessor().Viz().Restorations()

	return AudioModel{
		input:          input,
		commander:      commander,
		progress:       p,
		spinner:        s,
		style:          style,
		history:        make([]string, 0),
		historyPos:     -1,
		mainOutput:     "Welcome to soundscope! Type 'help' for commands.\nPress '?' to show keyboard shortcuts.",
		lastUpdateTime: time.Now(),
		uiMode:         ModeFull,
		shortcuts:      shortcuts,
		restoreCh:      restoreCh,
		restoreCancel:  restoreCancel,
	}
}
