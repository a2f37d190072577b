package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"soundscope/pkg/api"
	"soundscope/pkg/viz"
)

// ProcessingState describes what the processor is currently doing with a clip.
type ProcessingState int

const (
	StateIdle ProcessingState = iota
	StateLoading
	StateAnalyzing
	StateClassifying
	StateComplete
)

// ProcessingStatus is a snapshot of processor progress shown by the UI.
type ProcessingStatus struct {
	State       ProcessingState
	Message     string
	Progress    float64
	CanCancel   bool
	StartTime   time.Time
	BytesLoaded int64
	TotalBytes  int64
}

// Processor owns the loaded clip, its decoded signal, the local preview
// analysis, and the visualization stack built from classification results.
type Processor struct {
	mu sync.Mutex

	currentFile []byte
	metadata    *Metadata
	pcm         []float64
	sampleRate  int
	preview     *Preview
	result      *api.EvaluateResponse

	status         ProcessingStatus
	analysisCancel chan struct{}
	analysisDone   chan struct{}

	arbiter    *viz.Arbiter
	vizManager *viz.Manager
}

// NewProcessor creates an idle processor with its own render-slot arbiter.
func NewProcessor() *Processor {
	if err := initLogging(); err != nil {
		fmt.Printf("Warning: failed to initialize logging: %v\n", err)
	}
	arbiter := viz.NewArbiter()
	return &Processor{
		status:     ProcessingStatus{State: StateIdle},
		arbiter:    arbiter,
		vizManager: viz.NewManager(arbiter),
	}
}

// Viz exposes the visualization manager for input routing and rendering.
func (p *Processor) Viz() *viz.Manager {
	return p.vizManager
}

// GetStatus returns the current processing status snapshot.
func (p *Processor) GetStatus() ProcessingStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// GetCurrentFile returns the raw bytes of the loaded clip, or nil.
func (p *Processor) GetCurrentFile() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentFile
}

// GetMetadata returns extracted metadata for the loaded clip, or nil.
func (p *Processor) GetMetadata() *Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadata
}

// GetPCM returns the decoded mono signal and its sample rate.
func (p *Processor) GetPCM() ([]float64, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pcm, p.sampleRate
}

// GetResult returns the most recent classification response, or nil.
func (p *Processor) GetResult() *api.EvaluateResponse {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Load reads a clip from a path or http(s) URL, extracts metadata, decodes
// PCM, and kicks off the local preview analysis. It blocks until loading and
// decoding finish; the preview runs in the background.
func (p *Processor) Load(input string) error {
	p.mu.Lock()
	if p.status.State == StateLoading || p.status.State == StateAnalyzing {
		p.mu.Unlock()
		return fmt.Errorf("another load is already in progress")
	}
	p.cancelAnalysisLocked()
	cancelChan := make(chan struct{})
	p.analysisCancel = cancelChan
	p.status = ProcessingStatus{
		State:     StateLoading,
		Message:   "Loading...",
		CanCancel: true,
		StartTime: time.Now(),
	}
	p.mu.Unlock()

	var data []byte
	var err error
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		data, err = p.loadFromURL(input, cancelChan)
	} else {
		data, err = p.loadFromFile(input, cancelChan)
	}
	if err != nil {
		p.setError(fmt.Sprintf("Load failed: %v", err))
		return err
	}

	logDebug("loaded %d bytes from %s", len(data), input)

	meta, err := ExtractMetadata(data)
	if err != nil {
		logDebug("metadata extraction failed: %v", err)
		meta = &Metadata{FileSize: int64(len(data))}
	}

	p.setStatus(StateAnalyzing, "Decoding audio...")
	pcm, sampleRate, err := DecodePCM(data, func(fraction float64) {
		p.updateProgressWithMessage(StateAnalyzing, "Decoding audio...", fraction)
	}, cancelChan)
	if err != nil {
		p.setError(fmt.Sprintf("Decode failed: %v", err))
		return err
	}

	p.mu.Lock()
	p.currentFile = data
	p.metadata = meta
	p.pcm = pcm
	p.sampleRate = sampleRate
	p.result = nil
	done := make(chan struct{})
	p.analysisDone = done
	p.mu.Unlock()

	p.vizManager.RemoveAll()

	go p.runPreview(pcm, sampleRate, cancelChan, done)
	return nil
}

// runPreview computes the local spectrogram and installs the preview surface.
func (p *Processor) runPreview(pcm []float64, sampleRate int, cancelChan chan struct{}, done chan struct{}) {
	defer close(done)

	preview := NewPreview(sampleRate)
	err := preview.Analyze(pcm, func(fraction float64) {
		p.updateProgressWithMessage(StateAnalyzing, "Analyzing audio...", fraction)
	}, cancelChan)
	if err != nil {
		logDebug("preview analysis failed: %v", err)
		p.setStatus(StateComplete, "Loaded (no preview available)")
		return
	}

	p.mu.Lock()
	p.preview = preview
	meta := p.metadata
	p.mu.Unlock()

	grid := viz.GridFromValues(preview.Power)
	p.vizManager.AddSurface(viz.PreviewMode, viz.NewPreviewSurface(grid, preview.FreqBands))

	var duration time.Duration
	if meta != nil {
		duration = meta.Duration
	}
	if duration == 0 && sampleRate > 0 {
		duration = time.Duration(float64(len(pcm)) / float64(sampleRate) * float64(time.Second))
	}
	p.vizManager.AddSurface(viz.WaveformMode, viz.NewWaveformSurface(pcm, sampleRate, duration))

	p.setStatus(StateComplete, "Ready")
}

// ApplyClassification installs the surfaces built from a service response:
// the model's input spectrogram, per-layer feature maps, the service-side
// waveform, the prediction bars, and the architecture overview.
func (p *Processor) ApplyClassification(resp *api.EvaluateResponse) error {
	if resp == nil {
		return fmt.Errorf("empty classification response")
	}

	p.mu.Lock()
	p.result = resp
	p.mu.Unlock()

	if resp.InputSpectogram.Rows() > 0 {
		grid := viz.NewGrid(resp.InputSpectogram.Rows(), resp.InputSpectogram.Cols(), resp.InputSpectogram.Values)
		p.vizManager.AddSurface(viz.SpectrogramMode, viz.NewSpectrogramSurface(grid, nil))
	}

	if len(resp.Visualization) > 0 {
		layers := make(map[string]*viz.Grid, len(resp.Visualization))
		for name, arr := range resp.Visualization {
			if arr.Rows() == 0 {
				continue
			}
			layers[name] = viz.NewGrid(arr.Rows(), arr.Cols(), arr.Values)
		}
		if len(layers) > 0 {
			p.vizManager.AddSurface(viz.FeatureMapMode, viz.NewFeatureMapSurface(layers))
			p.vizManager.AddSurface(viz.ArchitectureMode, viz.NewArchitectureSurface(layers))
		}
	}

	if len(resp.Waveform.Values) > 0 {
		duration := time.Duration(resp.Waveform.Duration * float64(time.Second))
		p.vizManager.AddSurface(viz.WaveformMode,
			viz.NewWaveformSurface(resp.Waveform.Values, resp.Waveform.SampleRate, duration))
	}

	if len(resp.Predictions) > 0 {
		preds := make([]viz.Prediction, 0, len(resp.Predictions))
		for _, pr := range resp.Predictions {
			preds = append(preds, viz.Prediction{Class: pr.Class, Confidence: pr.Confidence})
		}
		p.vizManager.AddSurface(viz.PredictionsMode, viz.NewPredictionsSurface(preds))
	}

	p.setStatus(StateComplete, "Classification complete")

	// The spectrogram carries the highest priority, so switching to it
	// preempts whatever surface currently holds the render slot.
	if resp.InputSpectogram.Rows() > 0 {
		return p.vizManager.SetMode(viz.SpectrogramMode)
	}
	return nil
}

// CancelProcessing aborts any in-flight load or analysis.
func (p *Processor) CancelProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelAnalysisLocked()
	p.status = ProcessingStatus{State: StateIdle, Message: "Cancelled"}
}

func (p *Processor) cancelAnalysisLocked() {
	if p.analysisCancel != nil {
		close(p.analysisCancel)
		p.analysisCancel = nil
	}
}

// Unload clears the current clip and tears down all visualization surfaces,
// releasing the render slot.
func (p *Processor) Unload() {
	p.mu.Lock()
	p.cancelAnalysisLocked()
	p.currentFile = nil
	p.metadata = nil
	p.pcm = nil
	p.sampleRate = 0
	p.preview = nil
	p.result = nil
	p.status = ProcessingStatus{State: StateIdle}
	p.mu.Unlock()

	p.vizManager.RemoveAll()
}

// WaitForAnalysis blocks until the background preview finishes. Used by tests.
func (p *Processor) WaitForAnalysis() {
	p.mu.Lock()
	done := p.analysisDone
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}
