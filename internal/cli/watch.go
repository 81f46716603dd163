package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/formatter"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/picker"
	"github.com/yildizm/jim/internal/workflow"
)

var (
	watchExercise string
	watchPick     bool
	watchExisting bool
	watchDebounce time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Analyze every video dropped into a directory",
		Long: `Watch a directory and upload each new video file for analysis.

A file is submitted once writes to it have settled for the debounce period,
so videos still being copied are not sent half-written. Each submission is
an independent upload and prints its own result. Press Ctrl+C to stop.

Examples:
  jim watch --exercise squat ./recordings
  jim watch -e sumo_deadlift --existing --output csv ./recordings > results.csv
  jim watch -e squat --pick`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchExercise, "exercise", "e", "", "exercise type applied to every video")
	cmd.Flags().BoolVar(&watchPick, "pick", false, "choose the directory with the native file dialog")
	cmd.Flags().BoolVar(&watchExisting, "existing", false, "also submit videos already in the directory")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before submitting (default watch.debounce)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	exerciseType, err := resolveExercise(watchExercise, cfg.UploadExercise())
	if err != nil {
		return err
	}
	if !exerciseType.IsSet() {
		return fmt.Errorf("an exercise type is required: use --exercise or upload.default_exercise (one of: %s)",
			strings.Join(exercise.Names(), ", "))
	}

	dir, err := resolveWatchDir(args)
	if err != nil {
		return err
	}

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	emit, err := newReportEmitter(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	debounce := cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = watchDebounce
	}

	watcher, err := createWatcher(dir)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := newVideoWatcher(exerciseType, cfg.Upload.Extensions, debounce, client, emit, newLogger("watch"))
	w.resolve = client.VideoURL

	w.log.Info("watching %s for %s videos", dir, exerciseType)
	if watchExisting {
		if err := w.queueExisting(dir); err != nil {
			return err
		}
	}

	return w.run(ctx, watcher)
}

// resolveWatchDir takes the positional directory or asks the native dialog
func resolveWatchDir(args []string) (string, error) {
	var dir string
	switch {
	case len(args) == 1:
		dir = args[0]
	case watchPick:
		selected, err := videoPicker.SelectDirectory()
		if err != nil {
			return "", err
		}
		dir = selected
	default:
		dir = "."
	}

	if err := validateWatchDir(dir); err != nil {
		return "", fmt.Errorf("invalid watch directory: %w", err)
	}
	return filepath.Clean(dir), nil
}

// validateWatchDir checks that dir exists and is a directory
func validateWatchDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty directory path")
	}
	info, err := os.Stat(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// newReportEmitter writes one report per submission. CSV output shares a
// single header across all records.
func newReportEmitter(w io.Writer) (func(*formatter.Report) error, error) {
	if strings.EqualFold(getOutputFormat(), "csv") {
		cw := formatter.NewCSVWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return nil, err
		}
		return cw.Write, nil
	}

	f, err := newReportFormatter()
	if err != nil {
		return nil, err
	}
	return func(report *formatter.Report) error {
		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates a file system watcher on dir
func createWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return watcher, nil
}

// fileStamp identifies one version of a file's content
type fileStamp struct {
	size    int64
	modTime time.Time
}

func (s fileStamp) same(o fileStamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

// videoWatcher turns settled file events into upload workflows. All state
// is owned by the run loop; timers only hand paths back through ready.
type videoWatcher struct {
	exercise   exercise.Type
	extensions []string
	debounce   time.Duration
	submitter  workflow.VideoSubmitter
	resolve    func(string) string
	emit       func(*formatter.Report) error
	log        *logger.Logger

	timers    map[string]*time.Timer
	submitted map[string]fileStamp
	ready     chan string
	stop      chan struct{}
}

func newVideoWatcher(t exercise.Type, extensions []string, debounce time.Duration, s workflow.VideoSubmitter, emit func(*formatter.Report) error, log *logger.Logger) *videoWatcher {
	return &videoWatcher{
		exercise:   t,
		extensions: extensions,
		debounce:   debounce,
		submitter:  s,
		emit:       emit,
		log:        log,
		timers:     make(map[string]*time.Timer),
		submitted:  make(map[string]fileStamp),
		ready:      make(chan string),
		stop:       make(chan struct{}),
	}
}

// run processes events until ctx is done
func (w *videoWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)

		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

// handleEvent schedules video files that were created or written
func (w *videoWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if len(w.extensions) > 0 && !picker.HasExtension(event.Name, w.extensions) {
		return
	}
	w.schedule(event.Name)
}

// schedule (re)starts the debounce timer for path
func (w *videoWatcher) schedule(path string) {
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.ready <- path:
		case <-w.stop:
		}
	})
}

// queueExisting schedules every video already present in dir
func (w *videoWatcher) queueExisting(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if len(w.extensions) == 0 || picker.HasExtension(path, w.extensions) {
			w.schedule(path)
		}
	}
	return nil
}

// process submits path unless this version was already submitted
func (w *videoWatcher) process(ctx context.Context, path string) {
	delete(w.timers, path)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	stamp := fileStamp{size: info.Size(), modTime: info.ModTime()}
	if prev, ok := w.submitted[path]; ok && prev.same(stamp) {
		return
	}
	w.submitted[path] = stamp

	w.log.Info("submitting %s", filepath.Base(path))
	state, err := uploadVideo(ctx, w.submitter, w.exercise, path)
	if err != nil && state.Phase == workflow.PhaseIdle {
		w.log.Error("cannot submit %s: %v", filepath.Base(path), err)
		return
	}

	if err := w.emit(formatter.UploadReport(state, w.resolve)); err != nil {
		w.log.Error("failed to write report: %v", err)
	}
}

// shutdown stops pending timers and releases any blocked handoff
func (w *videoWatcher) shutdown() {
	for _, timer := range w.timers {
		timer.Stop()
	}
	close(w.stop)
}
