package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/formatter"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/service"
)

// newLogger creates a component logger gated by --verbose
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// newServiceClient builds the analysis service client from configuration
func newServiceClient() (*service.Client, error) {
	return service.New(getConfig(), newLogger("service"))
}

// newReportFormatter returns the formatter selected by --output
func newReportFormatter() (formatter.Formatter, error) {
	return formatter.New(getOutputFormat(), formatter.Options{
		Color: colorEnabled(os.Stdout.Fd()),
		Emoji: !isEmojiDisabled(),
	})
}

// writeReport renders report to w in the selected output format
func writeReport(w io.Writer, report *formatter.Report) error {
	f, err := newReportFormatter()
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// resolveExercise picks the flag value, falling back to the configured
// default. An empty result means unset.
func resolveExercise(flag string, fallback exercise.Type) (exercise.Type, error) {
	if flag == "" {
		return fallback, nil
	}
	return exercise.Parse(flag)
}
