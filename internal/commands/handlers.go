package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"soundscope/internal/types"
	"soundscope/pkg/viz"
)

func (c *Commander) handleTrackCommand(cmd string, args []string) (string, error, tea.Cmd) {
	switch cmd {
	case "help", "h":
		return c.handleTrackHelp()
	case "unload":
		c.mode = ModeNormal
		c.processor.Unload()
		c.currentTrack = nil
		return "Track unloaded. Returning to normal mode.", nil, nil
	case "info", "i":
		return c.handleInfo()
	case "classify", "c":
		return c.handleClassify()
	case "play", "p":
		return c.handlePlay()
	case "pause":
		return c.handlePause()
	case "stop":
		return c.handleStop()
	case "viz", "v":
		if len(args) == 0 {
			return c.handleVisualization([]string{"preview"})
		}
		return c.handleVisualization(args)
	case "theme":
		if len(args) == 0 {
			return "", fmt.Errorf("usage: theme <default|mono|ocean|ember>"), nil
		}
		if err := c.processor.Viz().SetTheme(args[0]); err != nil {
			return "", err, nil
		}
		return fmt.Sprintf("Theme set to %s", args[0]), nil, nil
	default:
		return "", fmt.Errorf("unknown track command: %s (type 'help' for available commands)", cmd), nil
	}
}

func (c *Commander) handleNormalCommand(cmd string, args []string) (string, error, tea.Cmd) {
	switch cmd {
	case "help", "h":
		return c.handleHelp()
	case "load", "l":
		if len(args) == 0 {
			return "", fmt.Errorf("usage: load <path/url>"), nil
		}
		path := strings.Join(args, " ")
		path = strings.Trim(path, `"'`)
		if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
			path = filepath.Clean(path)
		}
		out, err := c.handleLoad(path)
		if err == nil {
			c.mode = ModeTrack
		}
		return out, err, nil
	case "endpoint", "e":
		return c.handleEndpoint(args)
	case "quit", "q", "exit":
		return "Goodbye!", nil, tea.Quit
	default:
		return "", fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd), nil
	}
}

func (c *Commander) handleEndpoint(args []string) (string, error, tea.Cmd) {
	if len(args) == 0 {
		return fmt.Sprintf("Inference endpoint: %s", c.apiClient.Endpoint()), nil, nil
	}
	c.apiClient.SetEndpoint(args[0])
	return fmt.Sprintf("Inference endpoint set to %s", args[0]), nil, nil
}

func (c *Commander) handleVisualization(args []string) (string, error, tea.Cmd) {
	if len(args) == 0 {
		return "", fmt.Errorf("visualization type required"), nil
	}
	vizMap := map[string]viz.ViewMode{
		"preview":  viz.PreviewMode,
		"spectrum": viz.SpectrogramMode,
		"features": viz.FeatureMapMode,
		"wave":     viz.WaveformMode,
		"classes":  viz.PredictionsMode,
		"arch":     viz.ArchitectureMode,
	}
	vizType := strings.ToLower(args[0])
	vMode, ok := vizMap[vizType]
	if !ok {
		return "", fmt.Errorf("unknown visualization: %s", vizType), nil
	}

	if err := c.processor.Viz().SetMode(vMode); err != nil {
		return "", err, nil
	}

	return "", nil, func() tea.Msg {
		return types.EnterVizMsg{Mode: vMode}
	}
}
