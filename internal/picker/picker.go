// Package picker opens native file dialogs for choosing videos to analyze.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/zenity"
)

// ErrCanceled is returned when the user dismisses the dialog
var ErrCanceled = errors.New("selection canceled")

// Picker selects a path from the local filesystem
type Picker interface {
	SelectVideo(extensions []string) (string, error)
	SelectDirectory() (string, error)
}

// Native shows the platform dialog through zenity
type Native struct{}

// SelectVideo shows a single-file dialog filtered to the given extensions
func (Native) SelectVideo(extensions []string) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Select exercise video"),
		zenity.FileFilters{
			{
				Name:     "Video files",
				Patterns: Patterns(extensions),
				CaseFold: true,
			},
		},
	)
	return path, wrap(err)
}

// SelectDirectory shows a folder dialog
func (Native) SelectDirectory() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Directory(),
		zenity.Title("Select folder to watch"),
	)
	return path, wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, zenity.ErrCanceled) {
		return ErrCanceled
	}
	return fmt.Errorf("file dialog failed: %w", err)
}

// Patterns turns ".mp4" style extensions into "*.mp4" glob patterns
func Patterns(extensions []string) []string {
	patterns := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		patterns = append(patterns, "*"+strings.ToLower(ext))
	}
	return patterns
}

// HasExtension reports whether path ends in one of the extensions,
// ignoring case
func HasExtension(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
