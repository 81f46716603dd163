package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/picker"
	"github.com/yildizm/jim/internal/ui/components"
	"github.com/yildizm/jim/internal/workflow"
)

// Service is the analysis service as seen by the TUI
type Service interface {
	workflow.VideoSubmitter
	workflow.LiveStarter
	VideoURL(ref string) string
}

// Options configures the interactive app
type Options struct {
	Service    Service
	Picker     picker.Picker
	Themes     *ThemeService
	Extensions []string
	Logger     *logger.Logger

	UploadExercise exercise.Type
	LiveExercise   exercise.Type
}

// panel identifies one of the two workflow panels
type panel int

const (
	panelUpload panel = iota
	panelLive
)

// mode is the input mode of the focused panel
type mode int

const (
	modeNavigate mode = iota
	modeChooseExercise
	modeEnterPath
)

// Model is the bubbletea model presenting the upload and live workflows
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	svc        Service
	picker     picker.Picker
	themes     *ThemeService
	styles     *Styles
	extensions []string
	log        *logger.Logger

	upload *workflow.Upload
	live   *workflow.Live

	uploadExercises *components.List
	liveExercises   *components.List
	spinner         *components.Spinner
	gauge           *components.Gauge

	focus     panel
	mode      mode
	pathInput string
	notice    string
	showHelp  bool
	showAbout bool
	ticking   bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the interactive model
func NewModel(opts *Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.New("ui", nil)
	}
	themes := opts.Themes
	if themes == nil {
		themes = NewThemeService(DefaultTheme.Name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:             ctx,
		cancel:          cancel,
		svc:             opts.Service,
		picker:          opts.Picker,
		themes:          themes,
		extensions:      opts.Extensions,
		log:             log,
		upload:          workflow.NewUpload(log.WithComponent("upload")),
		live:            workflow.NewLive(log.WithComponent("live")),
		uploadExercises: newExerciseList(),
		liveExercises:   newExerciseList(),
		spinner:         components.NewSpinner(""),
		gauge:           components.NewGauge(20),
	}

	if opts.UploadExercise.Valid() {
		_ = m.upload.SelectExerciseType(opts.UploadExercise)
		m.uploadExercises.Select(opts.UploadExercise.String())
	}
	if opts.LiveExercise.Valid() {
		_ = m.live.SelectExerciseType(opts.LiveExercise)
		m.liveExercises.Select(opts.LiveExercise.String())
	}

	m.applyTheme(themes.Get())
	return m
}

func newExerciseList() *components.List {
	items := make([]components.ListItem, 0, len(exercise.All))
	for _, t := range exercise.All {
		items = append(items, components.ListItem{ID: t.String(), Title: t.Label()})
	}
	return components.NewList("Exercise Type", exercise.Type("").Label(), items)
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case uploadDoneMsg:
		return m.handleUploadDone(msg)
	case liveDoneMsg:
		return m.handleLiveDone(msg)
	case filePickedMsg:
		return m.handleFilePicked(msg)
	case pickErrorMsg:
		return m.handlePickError(msg)
	case themeChangedMsg:
		m.applyTheme(msg.theme)
	}

	return m, nil
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

// handleKeyPress dispatches on the current input mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	switch m.mode {
	case modeChooseExercise:
		return m.handleExerciseKey(msg)
	case modeEnterPath:
		return m.handlePathKey(msg)
	}

	if m.showHelp || m.showAbout {
		m.showHelp, m.showAbout = false, false
		if msg.String() != "q" {
			return m, nil
		}
	}

	switch msg.String() {
	case "q":
		return m.handleQuit()
	case "tab", "shift+tab", "left", "right", "h", "l":
		return m.handleSwitchPanel()
	case "e", "up", "down", "k", "j":
		return m.handleOpenExercises()
	case "f":
		return m.handleOpenPathInput()
	case "o":
		return m.handleOpenPicker()
	case "enter", "s":
		return m.handleSubmit()
	case "t":
		m.applyTheme(m.themes.Toggle())
		return m, nil
	case "?":
		m.showHelp = true
		return m, nil
	case "a":
		m.showAbout = true
		return m, nil
	}
	return m, nil
}

// handleQuit cancels outstanding requests and exits
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

// handleSwitchPanel moves focus to the other panel
func (m *Model) handleSwitchPanel() (tea.Model, tea.Cmd) {
	if m.focus == panelUpload {
		m.focus = panelLive
	} else {
		m.focus = panelUpload
	}
	m.notice = ""
	return m, nil
}

// handleOpenExercises expands the exercise list of the focused panel
func (m *Model) handleOpenExercises() (tea.Model, tea.Cmd) {
	if m.focusedInFlight() {
		return m, nil
	}
	list := m.focusedExercises()
	list.Focused = true
	if list.Chosen >= 0 {
		list.Cursor = list.Chosen
	}
	m.mode = modeChooseExercise
	return m, nil
}

// handleExerciseKey navigates the expanded exercise list
func (m *Model) handleExerciseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.focusedExercises()

	switch msg.String() {
	case "up", "k":
		list.MoveUp()
	case "down", "j":
		list.MoveDown()
	case "esc", "q":
		list.Focused = false
		m.mode = modeNavigate
	case "enter", " ":
		item, ok := list.Choose()
		list.Focused = false
		m.mode = modeNavigate
		if !ok {
			return m, nil
		}
		t := exercise.Type(item.ID)
		var err error
		if m.focus == panelUpload {
			err = m.upload.SelectExerciseType(t)
		} else {
			err = m.live.SelectExerciseType(t)
		}
		if err != nil {
			m.notice = err.Error()
		}
	}
	return m, nil
}

// handleOpenPathInput starts typing a video path
func (m *Model) handleOpenPathInput() (tea.Model, tea.Cmd) {
	if m.focus != panelUpload || m.focusedInFlight() {
		return m, nil
	}
	m.mode = modeEnterPath
	m.pathInput = ""
	if f := m.upload.Snapshot().File; f != nil && f.Path != "" {
		m.pathInput = f.Path
	}
	m.notice = ""
	return m, nil
}

// handlePathKey edits the path being typed
func (m *Model) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNavigate
	case tea.KeyEnter:
		m.mode = modeNavigate
		m.chooseFile(strings.TrimSpace(m.pathInput))
	case tea.KeyBackspace:
		if r := []rune(m.pathInput); len(r) > 0 {
			m.pathInput = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.pathInput = ""
	case tea.KeyRunes, tea.KeySpace:
		m.pathInput += string(msg.Runes)
	}
	return m, nil
}

// handleOpenPicker opens the native file dialog
func (m *Model) handleOpenPicker() (tea.Model, tea.Cmd) {
	if m.focus != panelUpload || m.focusedInFlight() {
		return m, nil
	}
	if m.picker == nil {
		m.notice = "File dialog unavailable; press f to enter a path"
		return m, nil
	}
	m.notice = "Waiting for file dialog..."
	return m, pickFileCommand(m.picker, m.extensions)
}

// handleFilePicked applies a dialog selection
func (m *Model) handleFilePicked(msg filePickedMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.chooseFile(msg.path)
	return m, nil
}

// handlePickError reports dialog failures; cancellation keeps the old file
func (m *Model) handlePickError(msg pickErrorMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, picker.ErrCanceled) {
		m.notice = ""
		return m, nil
	}
	m.log.Warn("file dialog failed: %v", msg.err)
	m.notice = "File dialog failed; press f to enter a path"
	return m, nil
}

// chooseFile resolves path into the upload workflow's selected file. An
// empty path clears the selection.
func (m *Model) chooseFile(path string) {
	if path == "" {
		m.upload.SelectFile(nil)
		return
	}
	if len(m.extensions) > 0 && !picker.HasExtension(path, m.extensions) {
		m.notice = fmt.Sprintf("Not a supported video (%s)", strings.Join(m.extensions, ", "))
		return
	}
	f, err := workflow.FileFromPath(path)
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.upload.SelectFile(f)
	m.log.Debug("selected video %s (%d bytes)", filepath.Base(path), f.Size)
}

// handleSubmit starts the focused workflow when its control is enabled
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.svc == nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case panelUpload:
		req, ok := m.upload.Begin()
		if !ok {
			return m, nil
		}
		m.spinner.Label = "Uploading " + req.File.Name + "..."
		cmd = submitUploadCommand(m.ctx, m.svc, req)
	case panelLive:
		t, ok := m.live.Begin()
		if !ok {
			return m, nil
		}
		cmd = startLiveCommand(m.ctx, m.svc, t)
	}

	m.notice = ""
	return m, tea.Batch(cmd, m.startTicking())
}

// handleUploadDone resolves the upload workflow
func (m *Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.upload.Fail(msg.err)
	} else {
		m.upload.Complete(msg.resp)
	}
	return m, nil
}

// handleLiveDone resolves the live workflow
func (m *Model) handleLiveDone(msg liveDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.live.Fail(msg.err)
	} else {
		m.live.Complete()
	}
	return m, nil
}

// handleTick animates the spinner while anything is in flight
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.anyInFlight() {
		m.ticking = false
		return m, nil
	}
	m.spinner.Tick()
	return m, tick()
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *Model) anyInFlight() bool {
	return m.upload.Snapshot().Phase == workflow.PhaseSubmitting ||
		m.live.Snapshot().Phase == workflow.PhaseSubmitting
}

func (m *Model) focusedInFlight() bool {
	if m.focus == panelUpload {
		return m.upload.Snapshot().Phase == workflow.PhaseSubmitting
	}
	return m.live.Snapshot().Phase == workflow.PhaseSubmitting
}

func (m *Model) focusedExercises() *components.List {
	if m.focus == panelUpload {
		return m.uploadExercises
	}
	return m.liveExercises
}

// applyTheme rebuilds styles and component palettes for theme
func (m *Model) applyTheme(theme Theme) {
	m.styles = NewStyles(theme)
	palette := components.Palette{
		Primary:   theme.Primary,
		Secondary: theme.Secondary,
		Selected:  theme.Selected,
		Success:   theme.Success,
		Warning:   theme.Warning,
		Error:     theme.Error,
	}
	m.uploadExercises.Palette = palette
	m.liveExercises.Palette = palette
	m.spinner.Palette = palette
	m.gauge.Palette = palette
}

// Run runs the interactive TUI until the user quits
func Run(opts *Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := model.themes.Subscribe(func(theme Theme) {
		model.log.Debug("theme changed to %s", theme.Name)
		go p.Send(themeChangedMsg{theme: theme})
	})
	defer unsubscribe()
	defer model.cancel()

	_, err := p.Run()
	return err
}
