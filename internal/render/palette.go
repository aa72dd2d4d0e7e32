package render

import "github.com/charmbracelet/lipgloss"

// ansiCode maps each ColorKind to its ANSI base color.
var ansiCode = [colorKindCount]string{
	ColorGreen:   "2",
	ColorCyan:    "6",
	ColorBlue:    "4",
	ColorMagenta: "5",
	ColorYellow:  "3",
	ColorRed:     "1",
}

// Palette holds one pre-built style per (color, brightness) pair. Styles are
// registered once at startup; per-window data only selects among them.
type Palette struct {
	styles [colorKindCount][2]lipgloss.Style
}

// NewPalette builds styles for the current terminal color profile.
func NewPalette() *Palette {
	p := &Palette{}
	for kind, code := range ansiCode {
		base := lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		p.styles[kind][0] = base
		p.styles[kind][1] = base.Bold(true)
	}
	return p
}

// Style returns the style registered for the assignment.
func (p *Palette) Style(a Assignment) lipgloss.Style {
	bright := 0
	if a.Bright {
		bright = 1
	}
	return p.styles[a.Color][bright]
}
