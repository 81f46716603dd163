package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/jim/internal/config"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/picker"
	"github.com/yildizm/jim/internal/ui"
)

var uiNoPicker bool

func newUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive interface",
		Long: `Open the interactive interface with the Video Analysis and Live Analysis
panels side by side.

Diagnostic output is written to output.log_file while the interface owns the
terminal.

Examples:
  jim
  jim ui --no-picker`,
		RunE: runUI,
	}

	cmd.Flags().BoolVar(&uiNoPicker, "no-picker", false, "disable the native file dialog")

	return cmd
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	closeLog := redirectDiagnostics(cfg.Output.LogFile)
	defer closeLog()

	client, err := newServiceClient()
	if err != nil {
		return err
	}

	opts := &ui.Options{
		Service:        client,
		Themes:         ui.NewThemeService(cfg.Output.Theme),
		Extensions:     cfg.Upload.Extensions,
		Logger:         newLogger("ui"),
		UploadExercise: cfg.UploadExercise(),
		LiveExercise:   cfg.LiveExercise(),
	}
	if !uiNoPicker {
		opts.Picker = picker.Native{}
	}

	return ui.Run(opts)
}

// redirectDiagnostics points the shared logger at path so log lines do not
// corrupt the alternate screen. An empty path discards them.
func redirectDiagnostics(path string) func() {
	if path == "" {
		logger.SetOutput(io.Discard, true)
		return func() { logger.SetOutput(os.Stderr, true) }
	}

	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		logger.SetOutput(io.Discard, true)
		return func() { logger.SetOutput(os.Stderr, true) }
	}

	// #nosec G304 - path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		logger.SetOutput(io.Discard, true)
		return func() { logger.SetOutput(os.Stderr, true) }
	}

	logger.SetOutput(f, true)
	return func() {
		logger.SetOutput(os.Stderr, true)
		_ = f.Close()
	}
}
