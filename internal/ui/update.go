package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"soundscope/internal/audio"
	"soundscope/internal/types"
	"soundscope/pkg/api"
)

// progressMsg is a bubble for manual progress commands if you ever want them.
type progressMsg float64

// Update is the main update function for our TUI's bubbletea loop.
func (m AudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	case progressMsg:
		var cmd tea.Cmd
		newProgress, cmd := m.progress.Update(float64(msg))
		m.progress = newProgress.(progress.Model)
		return m, cmd

	//----------------------------------------------------------------------
	// Visualization lifecycle messages
	//----------------------------------------------------------------------
	case types.EnterVizMsg:
		m.uiMode = ModeViz
		m.commander.GetProcessor().Viz().SetVisible(true)
		return m, nil

	case types.VizRestoredMsg:
		m.commander.GetProcessor().Viz().OnRestored(msg.ID)
		return m, m.listenRestorations()

	case types.ClassifiedMsg:
		if msg.Err != nil {
			m.loadingState.IsLoading = false
			m.mainOutput = fmt.Sprintf("Classification failed: %v", msg.Err)
			return m, nil
		}
		if err := m.commander.GetProcessor().ApplyClassification(msg.Resp); err != nil {
			m.mainOutput = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.mainOutput = formatPredictions(msg.Resp)
		m.uiMode = ModeViz
		m.commander.GetProcessor().Viz().SetVisible(true)
		return m, nil

	//----------------------------------------------------------------------
	// Bubble Tea key events
	//----------------------------------------------------------------------
	case tea.KeyMsg:
		// In visualization mode most keys steer the viewport instead of
		// the input field.
		if m.uiMode == ModeViz && m.commander.IsInTrackMode() {
			viz := m.commander.GetProcessor().Viz()
			switch msg.String() {
			case "esc", "q":
				viz.SetVisible(false)
				m.uiMode = ModeFull
				return m, nil

			case "tab":
				if name, err := viz.CycleMode(1); err == nil {
					m.mainOutput = fmt.Sprintf("Switched to %s", name)
				}
				return m, nil

			case "shift+tab":
				if name, err := viz.CycleMode(-1); err == nil {
					m.mainOutput = fmt.Sprintf("Switched to %s", name)
				}
				return m, nil

			case "+", "=":
				viz.HandleInput("+")
				return m, nil

			case "-", "_":
				viz.HandleInput("-")
				return m, nil

			case "left", "h":
				viz.HandleInput("left")
				return m, nil

			case "right", "l":
				viz.HandleInput("right")
				return m, nil

			case "0":
				viz.HandleInput("0")
				return m, nil

			case "[", "]":
				// Layer stepping on the feature-map surface.
				viz.HandleInput(msg.String())
				return m, nil

				// Let "enter" or other editing keys fall through to normal input:
			}
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			// If loading or analyzing can be canceled, do so:
			if m.loadingState.IsLoading && m.loadingState.CanCancel {
				if m.commander.GetProcessor() != nil {
					m.commander.GetProcessor().CancelProcessing()
				}
				m.loadingState.IsLoading = false
				m.mainOutput = "Operation cancelled."
				return m, nil
			}
			// If we're already prompting to exit, this time we really quit:
			if m.exitPrompt {
				return m, tea.Quit
			}
			if m.uiMode == ModeViz {
				m.commander.GetProcessor().Viz().SetVisible(false)
				m.uiMode = ModeFull
				return m, nil
			}
			// If track loaded, user might want to unload on ctrl+c. Or simply prompt to exit:
			if m.commander.IsInTrackMode() {
				output, err, cmd := m.commander.Execute("unload")
				if err != nil {
					m.mainOutput = fmt.Sprintf("Error: %v", err)
				} else {
					m.mainOutput = output
				}
				if cmd != nil {
					cmds = append(cmds, cmd)
				}
				return m, tea.Batch(cmds...)
			}
			// Normal prompt to exit:
			m.exitPrompt = true
			m.mainOutput = "Press Ctrl+C again to exit or any other key to continue..."
			return m, nil

		case tea.KeyUp:
			// Command history up
			if m.historyPos < len(m.history)-1 {
				m.historyPos++
				m.input.SetValue(m.history[len(m.history)-1-m.historyPos])
			}

		case tea.KeyDown:
			// Command history down
			if m.historyPos > 0 {
				m.historyPos--
				m.input.SetValue(m.history[len(m.history)-1-m.historyPos])
			} else if m.historyPos == 0 {
				m.historyPos = -1
				m.input.SetValue("")
			}

		case tea.KeyCtrlR:
			if !m.searchMode {
				m.searchMode = true
				m.searchQuery = ""
				m.input.SetValue("")
				m.input.Placeholder = "Search history..."
			}

		case tea.KeyTab:
			// Tab completion (only if not in search mode):
			if m.searchMode {
				return m, nil
			}
			m.handleTabCompletion()

		case tea.KeyEnter:
			m.exitPrompt = false
			m.mainOutput = strings.TrimSuffix(m.mainOutput, m.tabOutput)
			command := m.input.Value()

			if command != "" {
				// Search-mode logic:
				if m.searchMode {
					m.searchMode = false
					m.input.Placeholder = "Enter command (type 'help' for list)"
					for i := len(m.history) - 1; i >= 0; i-- {
						if strings.Contains(m.history[i], command) {
							m.input.SetValue(m.history[i])
							break
						}
					}
				} else {
					// Normal command execution:
					if m.uiMode == ModeViz {
						switch command {
						case "q", "quit", "exit":
							m.commander.GetProcessor().Viz().SetVisible(false)
							m.uiMode = ModeFull
							m.input.SetValue("")
							return m, nil
						case "help", "h", "?":
							m.mainOutput = m.showVisualizationShortcuts()
							m.input.SetValue("")
							return m, nil
						}
					}

					output, err, cmd := m.commander.Execute(command)
					if err != nil {
						m.mainOutput = fmt.Sprintf("Error: %v", err)
					} else {
						m.mainOutput = output
					}
					if cmd != nil {
						cmds = append(cmds, cmd)
					}

					m.history = append(m.history, command)
					m.historyPos = -1
					m.clearTabCompletion()
					m.input.SetValue("")
				}
			}

		case tea.KeyRunes:
			// "?" => show shortcuts
			if msg.Runes[0] == '?' {
				if m.uiMode == ModeViz {
					m.mainOutput = m.showVisualizationShortcuts()
				} else {
					m.mainOutput = m.showShortcuts()
				}
			}

		case tea.KeyEsc:
			if m.searchMode {
				m.searchMode = false
				m.input.Placeholder = "Enter command (type 'help' for list)"
				m.input.SetValue("")
			}
			if m.uiMode == ModeViz {
				m.commander.GetProcessor().Viz().SetVisible(false)
				m.uiMode = ModeFull
				return m, nil
			}
			m.clearTabCompletion()
			m.exitPrompt = false

		case tea.KeyBackspace:
			if len(m.input.Value()) == 0 {
				m.clearTabCompletion()
			}

		default:
			// Check if it's a recognized shortcut we mapped (ctrl+p, etc.):
			newModel, output, err, shortcutCmd := m.handleShortcut(msg.String())
			m = newModel
			if err != nil {
				m.mainOutput = fmt.Sprintf("Error: %v", err)
			} else if output != "" {
				m.mainOutput = output
			}
			if shortcutCmd != nil {
				cmds = append(cmds, shortcutCmd)
			}
			m.exitPrompt = false
			if m.searchMode {
				m.searchQuery = m.input.Value()
			}
		}

	//----------------------------------------------------------------------
	// Spinner (we always keep it ticking if needed)
	//----------------------------------------------------------------------
	case spinner.TickMsg:
		if m.loadingState.IsLoading {
			var cmd tea.Cmd
			newSpinner, cmd := m.spinner.Update(msg)
			m.spinner = newSpinner
			return m, cmd
		}

	//----------------------------------------------------------------------
	// Resize events
	//----------------------------------------------------------------------
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		}
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.progress.Width = msg.Width - 20

		m.commander.GetProcessor().Viz().SetDimensions(msg.Width, msg.Height-6)
	}

	// Mirror the processor status into the loading indicator.
	pStatus := m.commander.GetProcessor().GetStatus()
	m.syncLoadingStateFromProcessor(pStatus)

	// Update the input field
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	// If ready, update the viewport
	if m.ready {
		newViewport, viewportCmd := m.viewport.Update(msg)
		m.viewport = newViewport
		cmds = append(cmds, viewportCmd)
	}

	return m, tea.Batch(cmds...)
}

// syncLoadingStateFromProcessor updates our TUI loadingState from the Processor's status
func (m *AudioModel) syncLoadingStateFromProcessor(st audio.ProcessingStatus) {
	switch st.State {
	case audio.StateIdle, audio.StateComplete:
		m.loadingState.IsLoading = false
		m.loadingState.Message = ""
		m.loadingState.Progress = 0
		m.loadingState.CanCancel = false
		m.loadingState.BytesLoaded = 0
		m.loadingState.FileSize = 0

	case audio.StateLoading:
		m.loadingState.IsLoading = true
		m.loadingState.CanCancel = st.CanCancel
		m.loadingState.Message = st.Message
		m.loadingState.StartTime = st.StartTime

		// Only update progress if we have valid data
		if st.TotalBytes > 0 {
			m.loadingState.UpdateProgress(st.BytesLoaded, st.TotalBytes)
		} else {
			m.loadingState.BytesLoaded = st.BytesLoaded
			m.loadingState.FileSize = 0
			m.loadingState.Progress = 0
		}

	case audio.StateAnalyzing, audio.StateClassifying:
		m.loadingState.IsLoading = true
		m.loadingState.CanCancel = st.CanCancel
		m.loadingState.Message = st.Message
		m.loadingState.StartTime = st.StartTime
		m.loadingState.Progress = st.Progress
		m.loadingState.BytesLoaded = 0
		m.loadingState.FileSize = 0
	}
}

// formatPredictions summarizes the ranked classes from a service response.
func formatPredictions(resp *api.EvaluateResponse) string {
	if resp == nil || len(resp.Predictions) == 0 {
		return "Classification complete (no predictions returned)."
	}
	var sb strings.Builder
	sb.WriteString("Top predictions:\n")
	for i, p := range resp.Predictions {
		sb.WriteString(fmt.Sprintf("%d. %-24s %5.1f%%\n", i+1, p.Class, p.Confidence*100))
	}
	return sb.String()
}
