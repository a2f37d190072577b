package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// makeWAV encodes 16-bit PCM samples into an in-memory wav clip.
func makeWAV(t *testing.T, sampleRate, channels int, samples []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	out, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(out, sampleRate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	})
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, out.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestDecodePCMWav(t *testing.T) {
	samples := make([]int, 4000)
	for i := range samples {
		samples[i] = int(0.25 * 32767 * math.Sin(2*math.Pi*440*float64(i)/8000))
	}
	data := makeWAV(t, 8000, 1, samples)

	pcm, sampleRate, err := DecodePCM(data, nil, make(chan struct{}))
	require.NoError(t, err)
	require.Equal(t, 8000, sampleRate)
	require.Len(t, pcm, len(samples))

	for _, v := range pcm {
		require.LessOrEqual(t, math.Abs(v), 1.0)
	}
}

func TestDecodePCMAveragesChannels(t *testing.T) {
	// Left and right cancel out, the mono mix should be near silence.
	frames := 1000
	samples := make([]int, 0, frames*2)
	for i := 0; i < frames; i++ {
		samples = append(samples, 16000, -16000)
	}
	data := makeWAV(t, 8000, 2, samples)

	pcm, _, err := DecodePCM(data, nil, make(chan struct{}))
	require.NoError(t, err)
	require.Len(t, pcm, frames)
	for _, v := range pcm {
		require.InDelta(t, 0, v, 1e-3)
	}
}

func TestMixStereoFrameLoudCorrelatedChannels(t *testing.T) {
	// Loud in-phase stereo must mix to the same loud mono level, not wrap
	// negative through int16 overflow.
	got := mixStereoFrame(20000, 20000)
	require.InDelta(t, 20000.0/32768.0, got, 1e-9)
	require.Positive(t, got)

	require.InDelta(t, -1.0, mixStereoFrame(-32768, -32768), 1e-9)
	require.InDelta(t, 0, mixStereoFrame(16000, -16000), 1e-9)
}

func TestDecodePCMRejectsGarbage(t *testing.T) {
	_, _, err := DecodePCM([]byte("not audio data at all"), nil, make(chan struct{}))
	require.Error(t, err)
}

func TestPlaybackBytes(t *testing.T) {
	out := PlaybackBytes([]float64{0, 1, -1, 2})
	require.Len(t, out, 16)

	// Sample 1 is full scale on both stereo channels.
	require.Equal(t, byte(0xFF), out[4])
	require.Equal(t, byte(0x7F), out[5])
	require.Equal(t, out[4], out[6])
	require.Equal(t, out[5], out[7])

	// Values beyond [-1, 1] clamp instead of wrapping.
	require.Equal(t, out[4:8], out[12:16])
}

func TestExtractMetadataWav(t *testing.T) {
	samples := make([]int, 8000)
	data := makeWAV(t, 8000, 1, samples)

	meta, err := ExtractMetadata(data)
	require.NoError(t, err)
	require.Equal(t, "WAV", meta.Format)
	require.Equal(t, 8000, meta.SampleRate)
	require.Equal(t, 1, meta.Channels)
	require.Equal(t, "Unknown Title", meta.Title)
	require.InDelta(t, 1.0, meta.Duration.Seconds(), 0.05)
}
