package types

import (
	"soundscope/pkg/api"
	"soundscope/pkg/viz"
)

// EnterVizMsg asks the UI to switch into full-screen visualization mode.
type EnterVizMsg struct {
	Mode viz.ViewMode
}

// ClassifiedMsg carries the result of a remote classification request.
type ClassifiedMsg struct {
	Resp *api.EvaluateResponse
	Err  error
}

// VizRestoredMsg is emitted when a surface regains the render slot after the
// higher-priority holder released it.
type VizRestoredMsg struct {
	ID string
}
