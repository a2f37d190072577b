package audio

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Preview is a locally computed short-time spectrogram shown while the
// remote classification is in flight. It is a stand-in, not the
// authoritative mel spectrogram the service returns.
type Preview struct {
	Power      [][]float64 // dB per [freq bin][frame], bin 0 lowest
	FreqBands  []float64
	SampleRate int

	windowSize int
	hopSize    int
	fftSize    int
}

// NewPreview creates a preview analysis with the same frame parameters the
// inference service uses (2048-point window, 512 hop).
func NewPreview(sampleRate int) *Preview {
	return &Preview{
		SampleRate: sampleRate,
		windowSize: 2048,
		hopSize:    512,
		fftSize:    2048,
	}
}

// Analyze runs a Hann-windowed STFT over the signal and stores per-bin dB
// power. Frames are distributed over a worker per CPU.
func (p *Preview) Analyze(pcm []float64, progressFn func(float64), cancelChan chan struct{}) error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate (%d)", p.SampleRate)
	}
	if len(pcm) < p.windowSize {
		return fmt.Errorf("insufficient data for preview analysis")
	}

	numFrames := (len(pcm) - p.windowSize) / p.hopSize
	if numFrames < 1 {
		return fmt.Errorf("not enough samples for any analysis window")
	}

	bins := p.fftSize / 2
	p.FreqBands = make([]float64, bins)
	nyquist := float64(p.SampleRate) / 2.0
	for i := range p.FreqBands {
		p.FreqBands[i] = float64(i) * nyquist / float64(bins)
	}

	// Power is laid out rows=bins so row 0 (lowest frequency) lands at the
	// bottom of the rendered heatmap.
	p.Power = make([][]float64, bins)
	for i := range p.Power {
		p.Power[i] = make([]float64, numFrames)
	}

	numCPU := runtime.NumCPU()
	frameChan := make(chan int, numFrames)
	errChan := make(chan error, numCPU)
	var wg sync.WaitGroup

	logDebug("preview: starting STFT, frames=%d window=%d hop=%d", numFrames, p.windowSize, p.hopSize)

	for i := 0; i < numCPU; i++ {
		wg.Add(1)
		go p.stftWorker(pcm, frameChan, &wg, progressFn, cancelChan, errChan, numFrames)
	}

	go func() {
		defer close(frameChan)
		for f := 0; f < numFrames; f++ {
			select {
			case <-cancelChan:
				return
			default:
				frameChan <- f
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Workers that bailed out report through errChan even when all
		// of them have already returned.
		select {
		case err := <-errChan:
			return err
		default:
		}
		select {
		case <-cancelChan:
			return fmt.Errorf("analysis cancelled")
		default:
		}
	case <-cancelChan:
		return fmt.Errorf("analysis cancelled")
	case err := <-errChan:
		return err
	}

	if progressFn != nil {
		progressFn(1.0)
	}
	return nil
}

// stftWorker windows, transforms, and stores dB power for a subset of frames.
func (p *Preview) stftWorker(
	pcm []float64,
	frameChan chan int,
	wg *sync.WaitGroup,
	progressFn func(float64),
	cancelChan chan struct{},
	errChan chan error,
	totalFrames int,
) {
	defer wg.Done()

	// FFT plans carry scratch buffers, so each worker owns one.
	realFFT := fourier.NewFFT(p.fftSize)
	windowed := make([]float64, p.fftSize)

	for frame := range frameChan {
		select {
		case <-cancelChan:
			select {
			case errChan <- fmt.Errorf("cancelled"):
			default:
			}
			return
		default:
		}

		start := frame * p.hopSize
		if start+p.windowSize > len(pcm) {
			select {
			case errChan <- fmt.Errorf("invalid frame index"):
			default:
			}
			return
		}

		for i := 0; i < p.fftSize; i++ {
			if i < p.windowSize {
				w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(p.windowSize)))
				windowed[i] = pcm[start+i] * w
			} else {
				windowed[i] = 0
			}
		}

		spectrum := realFFT.Coefficients(nil, windowed)
		for bin := 0; bin < p.fftSize/2; bin++ {
			re := real(spectrum[bin])
			im := imag(spectrum[bin])
			amp := math.Sqrt(re*re + im*im)
			if amp < 1e-12 {
				amp = 1e-12
			}
			p.Power[bin][frame] = 20 * math.Log10(amp)
		}

		if progressFn != nil && totalFrames > 0 && frame%500 == 0 {
			progressFn(float64(frame) / float64(totalFrames))
		}
	}
}
