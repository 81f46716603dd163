package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem represents an item in a list
type ListItem struct {
	ID    string
	Title string
}

// List is a single-choice option list. Nothing is chosen until Choose is
// called, so a list can render an explicit "unset" state.
type List struct {
	Title       string
	Placeholder string
	Items       []ListItem
	Cursor      int
	Chosen      int
	Focused     bool
	Disabled    bool
	Width       int
	Palette     Palette
}

// NewList creates a new list component with no chosen item
func NewList(title, placeholder string, items []ListItem) *List {
	return &List{
		Title:       title,
		Placeholder: placeholder,
		Items:       items,
		Chosen:      -1,
		Palette:     DefaultPalette,
	}
}

// MoveUp moves the cursor up
func (l *List) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves the cursor down
func (l *List) MoveDown() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
	}
}

// Choose marks the item under the cursor as chosen and returns it
func (l *List) Choose() (ListItem, bool) {
	if l.Disabled || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return ListItem{}, false
	}
	l.Chosen = l.Cursor
	return l.Items[l.Cursor], true
}

// ChosenItem returns the chosen item, if any
func (l *List) ChosenItem() (ListItem, bool) {
	if l.Chosen < 0 || l.Chosen >= len(l.Items) {
		return ListItem{}, false
	}
	return l.Items[l.Chosen], true
}

// Select moves both cursor and choice to the item with the given id
func (l *List) Select(id string) bool {
	for i := range l.Items {
		if l.Items[i].ID == id {
			l.Cursor, l.Chosen = i, i
			return true
		}
	}
	return false
}

// Render renders the list. Collapsed lists show only the chosen item.
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(l.Palette.Secondary).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(l.Palette.Secondary)
	chosenStyle := lipgloss.NewStyle().Foreground(l.Palette.Primary).Bold(true)
	cursorStyle := lipgloss.NewStyle().Background(l.Palette.Selected).Foreground(l.Palette.Primary)

	current := l.Placeholder
	if item, ok := l.ChosenItem(); ok {
		current = item.Title
	}

	header := headerStyle.Render(l.Title+": ") + chosenStyle.Render(current)
	if !l.Focused || l.Disabled {
		return header
	}

	lines := []string{header}
	for i, item := range l.Items {
		marker := "  "
		if i == l.Chosen {
			marker = "● "
		}
		line := fmt.Sprintf("%s%s", marker, item.Title)

		style := normalStyle
		if i == l.Cursor {
			line = "▶" + strings.TrimPrefix(line, " ")
			style = cursorStyle
		}
		if l.Width > 0 {
			style = style.Width(l.Width)
		}
		lines = append(lines, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
