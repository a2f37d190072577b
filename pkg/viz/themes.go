package viz

import "github.com/charmbracelet/lipgloss"

// Theme bundles the text colors and the heat gradient a surface renders with.
type Theme struct {
	Text      lipgloss.Color
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Heat      Gradient
}

// DefaultTheme uses the quiet-to-loud gradient: deep blue through purple and
// red up to white.
func DefaultTheme() Theme {
	return Theme{
		Text:      lipgloss.Color("#ffffff"),
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#0088ff"),
		Heat: MustGradient(
			"#000040", "#000080", "#0000c0", "#0000ff", "#4000ff", "#8000ff",
			"#c000ff", "#ff00c0", "#ff0080", "#ff0040", "#ff0000", "#ff4000",
			"#ff8000", "#ffbf00", "#ffff00", "#ffffff",
		),
	}
}

// Themes contains all selectable color themes.
var Themes = map[string]Theme{
	"default": DefaultTheme(),
	"mono": {
		Text:      lipgloss.Color("#f8f8f2"),
		Primary:   lipgloss.Color("#f8f8f2"),
		Secondary: lipgloss.Color("#888888"),
		Heat:      MustGradient("#000000", "#ffffff"),
	},
	"ocean": {
		Text:      lipgloss.Color("#d8dee9"),
		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#81a1c1"),
		Heat: MustGradient(
			"#011936", "#1c4c6d", "#2e86ab", "#63c7b2", "#c5e99b", "#fff275",
		),
	},
	"ember": {
		Text:      lipgloss.Color("#f8f8f2"),
		Primary:   lipgloss.Color("#f92672"),
		Secondary: lipgloss.Color("#fd971f"),
		Heat: MustGradient(
			"#0d0221", "#3d0b3e", "#81173f", "#c72e3c", "#f25c05", "#ffb300", "#fff1c1",
		),
	},
}
