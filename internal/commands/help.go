package commands

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (c *Commander) handleHelp() (string, error, tea.Cmd) {
	help := `Available Commands:

help, h           Show this help message
load, l <path>    Load audio file from path or URL
endpoint, e [url] Show or set the inference endpoint
quit, q, exit     Exit application

Commands can be used with or without a colon prefix (:)
Example: Both "help" and ":help" will work`

	return help, nil, nil
}

func (c *Commander) handleTrackHelp() (string, error, tea.Cmd) {
	help := `Track Mode Commands:

info, i          Show detailed track information
classify, c      Send the clip to the inference service
play, p          Play current track
pause            Pause playback
stop             Stop playback
viz, v [type]    Open a visualization (preview, spectrum, features,
                 wave, classes, arch)
theme <name>     Switch color theme (default, mono, ocean, ember)
unload           Unload current track and return to normal mode
help, h          Show this help message`

	return help, nil, nil
}
