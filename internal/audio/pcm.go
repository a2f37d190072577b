package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodePCM converts a wav or mp3 clip to a mono float64 signal in [-1, 1].
// The format is sniffed from the data itself, the extension is not trusted.
func DecodePCM(data []byte, progressFn func(float64), cancelChan chan struct{}) ([]float64, int, error) {
	if len(data) >= 4 && bytes.Equal(data[:4], []byte("RIFF")) {
		return decodeWAVToPCM(data, progressFn, cancelChan)
	}
	return decodeMP3ToPCM(data, progressFn, cancelChan)
}

// decodeWAVToPCM reads the whole wav buffer and averages channels to mono.
func decodeWAVToPCM(data []byte, progressFn func(float64), cancelChan chan struct{}) ([]float64, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("wav has no channel format")
	}

	select {
	case <-cancelChan:
		return nil, 0, fmt.Errorf("decode cancelled")
	default:
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	scale := float64(int(1) << (dec.BitDepth - 1))
	if scale == 0 {
		scale = 1 << 15
	}

	frames := len(buf.Data) / channels
	pcm := make([]float64, 0, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / scale
		}
		pcm = append(pcm, sum/float64(channels))
	}

	if progressFn != nil {
		progressFn(1.0)
	}
	return pcm, sampleRate, nil
}

// decodeMP3ToPCM converts MP3 bytes to a mono float64 slice.
func decodeMP3ToPCM(mp3Bytes []byte, progressFn func(float64), cancelChan chan struct{}) ([]float64, int, error) {
	reader := bytes.NewReader(mp3Bytes)
	dec, err := mp3.NewDecoder(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to init mp3 decoder: %w", err)
	}

	sampleRate := dec.SampleRate()
	const bytesPerSample = 2
	const channels = 2
	frameSize := bytesPerSample * channels

	var pcm []float64
	totalSize := int64(len(mp3Bytes))
	var totalRead int64

	buf := make([]byte, 8192)
	for {
		select {
		case <-cancelChan:
			return nil, 0, fmt.Errorf("decode cancelled")
		default:
		}

		n, readErr := dec.Read(buf)
		if n > 0 {
			frames := n / frameSize
			for i := 0; i < frames; i++ {
				left := int16(buf[i*4+0]) | (int16(buf[i*4+1]) << 8)
				right := int16(buf[i*4+2]) | (int16(buf[i*4+3]) << 8)
				pcm = append(pcm, mixStereoFrame(left, right))
			}
			totalRead += int64(n)

			if progressFn != nil && totalSize > 0 {
				fraction := float64(totalRead) / float64(totalSize)
				if fraction > 1.0 {
					fraction = 1.0
				}
				progressFn(fraction)
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, 0, fmt.Errorf("decode mp3 read error: %w", readErr)
		}
	}

	return pcm, sampleRate, nil
}

// mixStereoFrame averages one stereo frame down to a mono sample in [-1, 1].
// The sum happens in float64 so full-scale correlated channels cannot wrap.
func mixStereoFrame(left, right int16) float64 {
	return (float64(left) + float64(right)) * 0.5 / 32768.0
}

// PlaybackBytes converts mono float64 samples into the 16-bit little-endian
// stereo stream the playback context expects.
func PlaybackBytes(pcm []float64) []byte {
	out := make([]byte, 0, len(pcm)*4)
	for _, v := range pcm {
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		s := int16(v * 32767)
		lo := byte(s)
		hi := byte(s >> 8)
		out = append(out, lo, hi, lo, hi)
	}
	return out
}
