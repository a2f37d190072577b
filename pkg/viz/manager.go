package viz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// modeOrder fixes the cycling order for tab navigation.
var modeOrder = []ViewMode{
	PreviewMode,
	SpectrogramMode,
	FeatureMapMode,
	WaveformMode,
	PredictionsMode,
	ArchitectureMode,
}

// Manager owns the surfaces and runs the render-slot protocol for whichever
// one the viewport shows: register on show, placeholder on denial, retry when
// a restoration event names the surface, unregister on hide. Surfaces never
// talk to the arbiter themselves.
type Manager struct {
	mu       sync.RWMutex
	arbiter  *Arbiter
	surfaces map[ViewMode]Surface
	current  ViewMode
	state    ViewState
	visible  bool
}

func NewManager(arbiter *Arbiter) *Manager {
	return &Manager{
		arbiter:  arbiter,
		surfaces: make(map[ViewMode]Surface),
		current:  PreviewMode,
		state: ViewState{
			Mode:   PreviewMode,
			Zoom:   1.0,
			Width:  80,
			Height: 24,
			Scheme: DefaultTheme(),
		},
	}
}

// AddSurface installs (or replaces) the surface for a mode. A replaced
// surface that was on screen hands its registration over to the new one.
func (m *Manager) AddSurface(mode ViewMode, s Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.surfaces[mode]
	m.surfaces[mode] = s

	if m.visible && m.current == mode {
		m.arbiter.Register(s.ID(), s.Priority())
		if old != nil {
			m.arbiter.Unregister(old.ID())
		}
	} else if old != nil {
		m.arbiter.Unregister(old.ID())
	}
}

// RemoveAll tears down every surface, releasing any held registration.
// Used when the clip is unloaded.
func (m *Manager) RemoveAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for mode, s := range m.surfaces {
		m.arbiter.Unregister(s.ID())
		delete(m.surfaces, mode)
	}
}

// SetMode switches the viewport to another surface. The incoming surface
// requests the render slot first (an attempted preemption), then the outgoing
// one releases; if the request was denied, the release triggers a promotion
// whose restoration event brings the new surface live.
func (m *Manager) SetMode(mode ViewMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.surfaces[mode]
	if !ok {
		return fmt.Errorf("visualization mode not available: %v", mode)
	}

	prev := m.surfaces[m.current]
	m.current = mode
	m.state.Mode = mode
	m.state.Pan = 0

	if m.visible {
		m.arbiter.Register(next.ID(), next.Priority())
		if prev != nil && prev.ID() != next.ID() {
			m.arbiter.Unregister(prev.ID())
		}
	}
	return nil
}

// CycleMode steps to the next installed surface in tab order.
func (m *Manager) CycleMode(direction int) (string, error) {
	m.mu.RLock()
	available := make([]ViewMode, 0, len(modeOrder))
	for _, mode := range modeOrder {
		if _, ok := m.surfaces[mode]; ok {
			available = append(available, mode)
		}
	}
	current := m.current
	m.mu.RUnlock()

	if len(available) == 0 {
		return "", fmt.Errorf("no visualizations available")
	}

	idx := 0
	for i, mode := range available {
		if mode == current {
			idx = i
			break
		}
	}
	next := available[(idx+direction+len(available))%len(available)]

	if err := m.SetMode(next); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.surfaces[next].Name(), nil
}

// SetVisible flips the viewport in or out of view. Hiding releases the
// current registration so a waiting surface can be promoted; showing re-runs
// the registration protocol from scratch.
func (m *Manager) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.visible == visible {
		return
	}
	m.visible = visible

	s, ok := m.surfaces[m.current]
	if !ok {
		return
	}
	if visible {
		m.arbiter.Register(s.ID(), s.Priority())
	} else {
		m.arbiter.Unregister(s.ID())
	}
}

// OnRestored handles a restoration event. Events naming some other surface
// are ignored; an event for the current surface is the cue to request the
// slot again.
func (m *Manager) OnRestored(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surfaces[m.current]
	if !ok || !m.visible || s.ID() != id {
		return
	}
	m.arbiter.Register(s.ID(), s.Priority())
}

// Restorations subscribes to the arbiter's promotion announcements.
func (m *Manager) Restorations() (<-chan string, func()) {
	return m.arbiter.Subscribe()
}

// Render draws the current surface if it owns the render slot, or a
// placeholder naming the actual owner when the slot was denied. "Denied" is
// deliberately distinct from "no surface yet".
func (m *Manager) Render() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.surfaces[m.current]
	if !ok {
		return "No visualization available"
	}

	var sb strings.Builder
	title := fmt.Sprintf("%s - %s", s.Name(), s.Description())
	sb.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(m.state.Scheme.Text).
		Render(title))
	sb.WriteString("\n")

	if m.visible && m.arbiter.IsOwner(s.ID()) {
		sb.WriteString(s.Render(m.state))
	} else {
		sb.WriteString(m.renderFallback(s))
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().
		Foreground(m.state.Scheme.Text).
		Render("←/→: Scroll | +/-: Zoom | 0: Reset | Tab: Next View"))

	return sb.String()
}

func (m *Manager) renderFallback(s Surface) string {
	owner, ok := m.arbiter.Owner()
	if !ok {
		return fmt.Sprintf("[%s paused: render slot released]", s.Name())
	}
	return fmt.Sprintf("[%s waiting for render slot, held by %s]", s.Name(), ownerKind(owner))
}

// ownerKind strips the uuid suffix from a surface id for display.
func ownerKind(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// HandleInput routes keys: pan/zoom/reset are shared state, anything else
// goes to the current surface.
func (m *Manager) HandleInput(key string) bool {
	switch key {
	case "zoom-in", "+":
		m.UpdateZoom(1.25)
		return true
	case "zoom-out", "-":
		m.UpdateZoom(0.8)
		return true
	case "left":
		m.UpdatePan(-4)
		return true
	case "right":
		m.UpdatePan(4)
		return true
	case "reset", "0":
		m.Reset()
		return true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surfaces[m.current]
	if !ok {
		return false
	}
	return s.HandleInput(key, &m.state)
}

func (m *Manager) UpdateZoom(factor float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Zoom = clampFloat(m.state.Zoom*factor, minScale, maxScale)
}

func (m *Manager) UpdatePan(deltaCols float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.state.Pan + deltaCols
	if next < 0 {
		next = 0
	}
	m.state.Pan = next
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Zoom = 1.0
	m.state.Pan = 0
}

func (m *Manager) SetDimensions(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Width = width
	m.state.Height = height
}

// SetTheme switches color themes by name.
func (m *Manager) SetTheme(name string) error {
	theme, ok := Themes[name]
	if !ok {
		return fmt.Errorf("unknown theme: %s", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Scheme = theme
	return nil
}

// CurrentMode returns the mode the viewport shows.
func (m *Manager) CurrentMode() ViewMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
