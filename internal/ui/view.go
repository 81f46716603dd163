package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/jim/internal/emoji"
	"github.com/yildizm/jim/internal/service"
	"github.com/yildizm/jim/internal/workflow"
)

const appTitle = "JIM - Just In Motion"

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.styles.Title.Render("Starting " + appTitle + "...")
	}

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.showAbout:
		body = m.renderAbout()
	default:
		body = m.renderPanels()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderNotice(),
		m.renderFooter(),
	)
}

func (m *Model) renderTitleBar() string {
	title := m.styles.Title.Render(emoji.GetEmoji("exercise") + " " + appTitle)
	theme := m.styles.Muted.Render(emoji.GetEmoji("theme") + " " + m.styles.Theme.Name)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(theme)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + theme
}

func (m *Model) renderPanels() string {
	panelWidth := m.width/2 - 2
	stacked := panelWidth < 40
	if stacked {
		panelWidth = m.width - 2
	}

	upload := m.panelStyle(panelUpload).Width(panelWidth).Render(m.renderUploadPanel())
	live := m.panelStyle(panelLive).Width(panelWidth).Render(m.renderLivePanel())

	if stacked {
		return lipgloss.JoinVertical(lipgloss.Left, upload, live)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, upload, live)
}

func (m *Model) panelStyle(p panel) lipgloss.Style {
	if m.focus == p {
		return m.styles.FocusedPanel
	}
	return m.styles.Panel
}

func (m *Model) renderUploadPanel() string {
	state := m.upload.Snapshot()

	lines := []string{
		m.styles.Header.Render(emoji.GetEmoji("video") + " Video Analysis"),
		m.styles.Muted.Render("Upload your workout video for detailed form analysis"),
		"",
		m.uploadExercises.Render(),
		"",
		m.styles.Label.Render("Video Upload: ") + m.renderFileField(state),
		"",
		m.renderButton("Upload and Analyze", state.CanSubmit(), state.Phase == workflow.PhaseSubmitting),
	}

	if result := m.renderResult(state.Result); result != "" {
		lines = append(lines, "", result)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderFileField(state workflow.UploadState) string {
	if m.mode == modeEnterPath && m.focus == panelUpload {
		return m.styles.Selected.Render(m.pathInput + "█")
	}
	if state.File == nil {
		return m.styles.Muted.Render("press o to browse or f to enter a path")
	}
	return m.styles.Body.Render(emoji.GetEmoji("file") + " " + state.File.Name + " (" + formatSize(state.File.Size) + ")")
}

func (m *Model) renderLivePanel() string {
	state := m.live.Snapshot()

	lines := []string{
		m.styles.Header.Render(emoji.GetEmoji("live") + " Live Analysis"),
		m.styles.Muted.Render("Start a live session for real-time feedback"),
		"",
		m.liveExercises.Render(),
		"",
		m.renderButton("Start Live Session", state.CanSubmit(), state.Phase == workflow.PhaseSubmitting),
	}

	switch state.Phase {
	case workflow.PhaseSucceeded:
		lines = append(lines, "", m.styles.Success.Render(emoji.GetEmoji("success")+" "+state.Message))
	case workflow.PhaseFailed:
		lines = append(lines, "", m.styles.Error.Render(emoji.GetEmoji("error")+" "+state.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderButton draws a submit control; disabled while gated or in flight
func (m *Model) renderButton(label string, enabled, inFlight bool) string {
	if inFlight {
		return m.spinner.Render()
	}
	if !enabled {
		return m.styles.Disabled.Render(label)
	}
	return m.styles.Button.Render(label)
}

// renderResult shows each present result field independently
func (m *Model) renderResult(r workflow.Result) string {
	var lines []string

	if r.Message != nil && *r.Message != "" {
		style := m.styles.Body
		if *r.Message == workflow.UploadFailureMessage {
			style = m.styles.Error
		}
		lines = append(lines, style.Render(emoji.GetEmoji("message")+" "+*r.Message))
	}
	if r.VideoURL != nil && *r.VideoURL != "" {
		url := *r.VideoURL
		if m.svc != nil {
			url = m.svc.VideoURL(url)
		}
		lines = append(lines,
			m.styles.Label.Render("Processed Video:"),
			m.styles.Link.Render(emoji.GetEmoji("link")+" "+url))
	}
	if r.AvgInjuryProbability != nil {
		p := *r.AvgInjuryProbability
		line := m.styles.Label.Render("Average Injury Probability: ") + m.styles.Header.Render(service.FormatProbability(p))
		lines = append(lines, line)
		if bar, ok := m.gauge.Render(p); ok {
			lines = append(lines, bar)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return m.styles.Warning.Render(emoji.GetEmoji("warning") + " " + m.notice)
}

func (m *Model) renderFooter() string {
	var hints string
	switch m.mode {
	case modeChooseExercise:
		hints = "↑↓ move • enter choose • esc cancel"
	case modeEnterPath:
		hints = "type a path • enter confirm • esc cancel"
	default:
		hints = "tab switch • e exercise • o browse • f path • enter submit • t theme • a about • ? help • q quit"
	}
	return m.styles.Footer.Render(hints)
}

func (m *Model) renderHelp() string {
	rows := [][2]string{
		{"tab / ← →", "switch between Video Analysis and Live Analysis"},
		{"e / ↑ ↓", "choose the exercise type"},
		{"o", "browse for a video with the native file dialog"},
		{"f", "type the path of a video"},
		{"enter / s", "submit the focused panel"},
		{"t", "cycle the color theme"},
		{"a", "about JIM"},
		{"q / ctrl+c", "quit"},
	}

	lines := []string{m.styles.Header.Render(emoji.GetEmoji("help") + " Keys"), ""}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s  %s", m.styles.Label.Width(12).Render(row[0]), row[1]))
	}
	lines = append(lines, "", m.styles.Muted.Render("Press any key to go back"))
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderAbout() string {
	lines := []string{
		m.styles.Header.Render(emoji.GetEmoji("rocket") + " Professional Fitness Analysis Platform"),
		m.styles.Muted.Render("Upload workout videos or start a live session for form analysis and injury prevention insights."),
		"",
	}
	for _, dev := range Developers {
		lines = append(lines,
			m.styles.Label.Render(dev.Name)+m.styles.Muted.Render(" · "+dev.Role),
			m.styles.Link.Render("github.com/"+dev.GitHub)+m.styles.Muted.Render("  linkedin.com/in/"+dev.LinkedIn),
			"")
	}
	lines = append(lines, m.styles.Muted.Render("Press any key to go back"))
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatSize formats a byte count for display
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
