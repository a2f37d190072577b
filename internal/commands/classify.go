package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"soundscope/internal/types"
)

const classifyTimeout = 3 * time.Minute

// handleClassify sends the loaded clip to the inference service in the
// background. The UI applies the response when the ClassifiedMsg arrives.
func (c *Commander) handleClassify() (string, error, tea.Cmd) {
	clip := c.processor.GetCurrentFile()
	if clip == nil {
		return "", fmt.Errorf("no track loaded"), nil
	}

	client := c.apiClient
	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
		defer cancel()
		resp, err := client.Classify(ctx, clip)
		return types.ClassifiedMsg{Resp: resp, Err: err}
	}

	return fmt.Sprintf("Classifying via %s ...", client.Endpoint()), nil, cmd
}
