package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/oto"
)

// PlaybackState enumerates whether the clip is playing, paused, or stopped.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

// playbackSampleRate and playbackChannels fix the output format; PlaybackBytes
// produces 16-bit stereo at 44.1 kHz regardless of the source clip.
const (
	playbackSampleRate = 44100
	playbackChannels   = 2
)

// Player pushes decoded clip audio through an oto context and tracks the
// playback position for the status line.
type Player struct {
	mutex      sync.Mutex
	context    *oto.Context
	player     *oto.Player
	state      PlaybackState
	buffer     []byte
	position   time.Duration
	duration   time.Duration
	lastUpdate time.Time
}

func NewPlayer() *Player {
	return &Player{
		state:      StateStopped,
		lastUpdate: time.Now(),
	}
}

// Play writes the provided stream to the oto player. The context is created
// lazily on first playback; if already playing this is a no-op.
func (p *Player) Play(data []byte) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.state == StatePlaying {
		return nil
	}

	if p.context == nil {
		ctx, err := oto.NewContext(playbackSampleRate, playbackChannels, 2, 4096)
		if err != nil {
			return fmt.Errorf("failed to create audio context: %w", err)
		}
		p.context = ctx
	}

	// Resuming from pause keeps the buffered stream; otherwise start over
	// with a fresh oto player.
	if p.state != StatePaused {
		if p.player != nil {
			p.player.Close()
		}
		p.player = p.context.NewPlayer()
		p.buffer = data
		if _, err := p.player.Write(data); err != nil {
			return fmt.Errorf("failed to write to player: %w", err)
		}
	}

	p.state = StatePlaying
	p.lastUpdate = time.Now()
	return nil
}

// Pause halts playback but keeps the position for resume.
func (p *Player) Pause() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.state != StatePlaying || p.player == nil {
		return nil
	}

	p.updatePosition()
	p.player.Close()
	p.player = nil
	p.state = StatePaused
	return nil
}

// Stop fully resets playback and position.
func (p *Player) Stop() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
	p.buffer = nil
	p.state = StateStopped
	p.position = 0
	return nil
}

// GetState returns whether the player is playing, paused, or stopped.
func (p *Player) GetState() PlaybackState {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state
}

// GetPosition returns the current playback position.
func (p *Player) GetPosition() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.state == StatePlaying {
		p.updatePosition()
	}
	return p.position
}

// updatePosition accumulates playing time since lastUpdate. Caller holds the
// mutex.
func (p *Player) updatePosition() {
	if p.state == StatePlaying {
		p.position += time.Since(p.lastUpdate)
		p.lastUpdate = time.Now()
	}
}

// SetDuration records the clip length so the progress bar can scale.
func (p *Player) SetDuration(d time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.duration = d
}

// GetDuration returns the total duration of the clip, if known.
func (p *Player) GetDuration() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.duration
}

// RenderTrackBar draws a text progress bar for the clip's current position.
func (p *Player) RenderTrackBar(width int) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.state == StateStopped {
		return ""
	}

	p.updatePosition()
	progress := 0.0
	if p.duration > 0 {
		progress = float64(p.position) / float64(p.duration)
	}
	if progress > 1.0 {
		progress = 1.0
	}

	barWidth := width - 20
	if barWidth < 1 {
		barWidth = 1
	}
	completed := int(float64(barWidth) * progress)

	var bar strings.Builder
	bar.WriteString("\r[")

	for i := 0; i < barWidth; i++ {
		switch {
		case i < completed:
			bar.WriteString("━")
		case i == completed && p.state == StatePlaying:
			bar.WriteString("⭘")
		case i == completed:
			bar.WriteString("□")
		default:
			bar.WriteString("─")
		}
	}

	fmt.Fprintf(&bar, "] %s/%s", formatDuration(p.position), formatDuration(p.duration))
	return bar.String()
}

// RefreshPosition updates the player's position if it is playing.
func (p *Player) RefreshPosition() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.updatePosition()
}
