package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m AudioModel) handleShortcut(key string) (AudioModel, string, error, tea.Cmd) {
	if command, ok := m.shortcuts[key]; ok {
		switch command {
		case "toggle-mode":
			if m.uiMode == ModeFull {
				m.uiMode = ModeMini
			} else {
				m.uiMode = ModeFull
			}
			return m, "UI mode toggled", nil, nil
		case "clear":
			m.mainOutput = ""
			return m, "", nil, nil
		default:
			output, err, cmd := m.commander.Execute(command)
			return m, output, err, cmd
		}
	}
	return m, "", nil, nil
}

func (m AudioModel) showShortcuts() string {
	var sb strings.Builder
	sb.WriteString("\nKeyboard Shortcuts:\n")
	for key, command := range m.shortcuts {
		sb.WriteString(fmt.Sprintf("%-12s: %s\n", key, command))
	}
	return sb.String()
}

func (m AudioModel) showVisualizationShortcuts() string {
	return `
Visualization Shortcuts:

tab/shift+tab : next/previous view
+ / -         : zoom in/out
left / right  : scroll
[ / ]         : previous/next layer (feature maps)
0             : reset zoom and pan
esc, q        : leave visualization mode
`
}
