package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/picker"
	"github.com/yildizm/jim/internal/service"
	"github.com/yildizm/jim/internal/workflow"
)

// uploadDoneMsg carries the outcome of an upload request
type uploadDoneMsg struct {
	resp *service.AnalysisResponse
	err  error
}

// liveDoneMsg carries the outcome of a live session start
type liveDoneMsg struct {
	err error
}

// filePickedMsg carries a path chosen in the native dialog
type filePickedMsg struct {
	path string
}

// pickErrorMsg reports a dialog failure or cancellation
type pickErrorMsg struct {
	err error
}

// themeChangedMsg is delivered after the active theme changes
type themeChangedMsg struct {
	theme Theme
}

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// submitUploadCommand sends a begun upload without blocking the event loop
func submitUploadCommand(ctx context.Context, s workflow.VideoSubmitter, req workflow.UploadRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := workflow.Send(ctx, s, req)
		return uploadDoneMsg{resp: resp, err: err}
	}
}

// startLiveCommand starts a live session without blocking the event loop
func startLiveCommand(ctx context.Context, s workflow.LiveStarter, t exercise.Type) tea.Cmd {
	return func() tea.Msg {
		return liveDoneMsg{err: s.StartLive(ctx, t)}
	}
}

// pickFileCommand opens the native video dialog
func pickFileCommand(p picker.Picker, extensions []string) tea.Cmd {
	return func() tea.Msg {
		path, err := p.SelectVideo(extensions)
		if err != nil {
			return pickErrorMsg{err: err}
		}
		return filePickedMsg{path: path}
	}
}
