package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame   int
	Label   string
	Palette Palette
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{Label: label, Palette: DefaultPalette}
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	style := lipgloss.NewStyle().Foreground(s.Palette.Primary).Bold(true)
	spinner := style.Render(spinnerFrames[s.Frame])

	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}

// Gauge renders a fraction in [0,1] as a horizontal bar. Values outside the
// range are not drawn.
type Gauge struct {
	Width   int
	Palette Palette
}

// NewGauge creates a gauge of the given width
func NewGauge(width int) *Gauge {
	return &Gauge{Width: width, Palette: DefaultPalette}
}

// Render draws the bar for value, or returns false when value is out of range
func (g *Gauge) Render(value float64) (string, bool) {
	if value < 0 || value > 1 || g.Width <= 0 {
		return "", false
	}

	filledWidth := int(float64(g.Width)*value + 0.5)
	emptyWidth := g.Width - filledWidth

	color := g.Palette.Success
	switch {
	case value >= 0.66:
		color = g.Palette.Error
	case value >= 0.33:
		color = g.Palette.Warning
	}

	filled := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filledWidth))
	empty := lipgloss.NewStyle().Foreground(g.Palette.Secondary).Render(strings.Repeat("░", emptyWidth))
	return "[" + filled + empty + "]", true
}
