package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:      "default",
		Primary:   adaptive("#C2410C", "#FB923C"),
		Secondary: adaptive("#6B7280", "#9CA3AF"),
		Accent:    adaptive("#0F766E", "#2DD4BF"),
		Success:   adaptive("#059669", "#10B981"),
		Warning:   adaptive("#D97706", "#F59E0B"),
		Error:     adaptive("#DC2626", "#EF4444"),
		Border:    adaptive("#D1D5DB", "#374151"),
		Muted:     adaptive("#6B7280", "#9CA3AF"),
		Selected:  adaptive("#FFEDD5", "#7C2D12"),
	}

	HighContrastTheme = Theme{
		Name:      "high-contrast",
		Primary:   adaptive("#000000", "#FFFFFF"),
		Secondary: adaptive("#333333", "#DDDDDD"),
		Accent:    adaptive("#000080", "#8080FF"),
		Success:   adaptive("#006600", "#00FF00"),
		Warning:   adaptive("#CC6600", "#FFAA00"),
		Error:     adaptive("#CC0000", "#FF4444"),
		Border:    adaptive("#000000", "#FFFFFF"),
		Muted:     adaptive("#555555", "#BBBBBB"),
		Selected:  adaptive("#FFFF00", "#444444"),
	}

	MinimalTheme = Theme{
		Name:      "minimal",
		Primary:   adaptive("#2D3748", "#E2E8F0"),
		Secondary: adaptive("#718096", "#A0AEC0"),
		Accent:    adaptive("#4A5568", "#CBD5E0"),
		Success:   adaptive("#2F855A", "#68D391"),
		Warning:   adaptive("#C05621", "#F6AD55"),
		Error:     adaptive("#C53030", "#FC8181"),
		Border:    adaptive("#E2E8F0", "#2D3748"),
		Muted:     adaptive("#A0AEC0", "#718096"),
		Selected:  adaptive("#EDF2F7", "#2D3748"),
	}
)

var themes = []Theme{DefaultTheme, HighContrastTheme, MinimalTheme}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	names := make([]string, 0, len(themes))
	for i := range themes {
		names = append(names, themes[i].Name)
	}
	return names
}

// ThemeByName looks up a theme
func ThemeByName(name string) (Theme, bool) {
	for i := range themes {
		if themes[i].Name == name {
			return themes[i], true
		}
	}
	return Theme{}, false
}

// ThemeService holds the active theme and notifies subscribers on change.
// Safe for concurrent use.
type ThemeService struct {
	mu          sync.RWMutex
	current     Theme
	subscribers map[int]func(Theme)
	nextID      int
}

// NewThemeService creates a service starting at the named theme, falling
// back to the default theme for unknown names
func NewThemeService(name string) *ThemeService {
	theme, ok := ThemeByName(name)
	if !ok {
		theme = DefaultTheme
	}
	return &ThemeService{
		current:     theme,
		subscribers: make(map[int]func(Theme)),
	}
}

// Get returns the active theme
func (s *ThemeService) Get() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set activates the named theme. Unknown names are ignored.
func (s *ThemeService) Set(name string) bool {
	theme, ok := ThemeByName(name)
	if !ok {
		return false
	}
	s.apply(theme)
	return true
}

// Toggle advances to the next theme in order and returns it
func (s *ThemeService) Toggle() Theme {
	s.mu.RLock()
	next := themes[0]
	for i := range themes {
		if themes[i].Name == s.current.Name {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	s.mu.RUnlock()

	s.apply(next)
	return next
}

// Subscribe registers fn to receive every subsequent theme change and
// returns a function that removes the registration
func (s *ThemeService) Subscribe(fn func(Theme)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *ThemeService) apply(theme Theme) {
	s.mu.Lock()
	s.current = theme
	subs := make([]func(Theme), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(theme)
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Link    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Selected lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style

	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	Footer       lipgloss.Style
}

// NewStyles builds the component styles for a theme
func NewStyles(theme Theme) *Styles {
	s := &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body:  lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().Foreground(theme.Muted),
		Label: lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
		Link:  lipgloss.NewStyle().Foreground(theme.Accent).Underline(true),

		Success: lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(theme.Error).Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 2),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
	}

	if IsColorDisabled() {
		plain := lipgloss.NewStyle()
		s.Title, s.Header, s.Label, s.Link = plain.Bold(true), plain.Bold(true), plain, plain
		s.Success, s.Warning, s.Error, s.Muted = plain, plain, plain, plain
		s.Selected = plain.Reverse(true)
	}
	return s
}
