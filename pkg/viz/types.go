package viz

// ViewMode selects which surface the viewport shows.
type ViewMode int

const (
	PreviewMode ViewMode = iota
	SpectrogramMode
	FeatureMapMode
	WaveformMode
	PredictionsMode
	ArchitectureMode
)

// Default surface priorities. The authoritative remote spectrogram outranks
// everything; the local preview only holds the slot until it arrives.
const (
	PriorityArchitecture = 0
	PriorityPredictions  = 0
	PriorityWaveform     = 1
	PriorityPreview      = 1
	PriorityFeatureMap   = 2
	PrioritySpectrogram  = 3
)

// ViewState carries the shared pan/zoom/size state every surface renders
// under.
type ViewState struct {
	Mode   ViewMode
	Zoom   float64
	Pan    float64 // horizontal offset into the data, in grid columns
	Width  int
	Height int
	Scheme Theme
}

// Surface is a visualization competing for the shared render context. A
// surface never draws live content unless the arbiter has granted its id the
// render slot. The Manager runs that protocol on its behalf: register when
// shown, fall back when denied, retry on a restoration event naming the id,
// unregister when hidden.
type Surface interface {
	ID() string
	Priority() int
	Name() string
	Description() string
	Render(state ViewState) string
	HandleInput(key string, state *ViewState) bool
}
