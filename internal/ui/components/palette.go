package components

import "github.com/charmbracelet/lipgloss"

// Palette carries the theme colors a component renders with
type Palette struct {
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Selected  lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
}

// DefaultPalette is used when no theme has been applied
var DefaultPalette = Palette{
	Primary:   lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"},
	Secondary: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Selected:  lipgloss.AdaptiveColor{Light: "#FFEDD5", Dark: "#7C2D12"},
	Success:   lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"},
	Warning:   lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"},
	Error:     lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"},
}
