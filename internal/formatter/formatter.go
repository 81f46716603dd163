package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/workflow"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Workflow names used in reports
const (
	WorkflowUpload = "upload"
	WorkflowLive   = "live"
)

// Report is the renderable outcome of one workflow submission
type Report struct {
	Workflow             string
	ExerciseType         exercise.Type
	File                 string
	Phase                string
	Message              *string
	VideoRef             *string
	VideoURL             *string
	AvgInjuryProbability *float64
	Error                string
	GeneratedAt          time.Time
}

// Succeeded reports whether the submission resolved successfully
func (r *Report) Succeeded() bool {
	return r.Phase == workflow.PhaseSucceeded.String()
}

// UploadReport builds a report from an upload snapshot. resolve turns the
// relative video reference into a fetchable URL and may be nil.
func UploadReport(state workflow.UploadState, resolve func(string) string) *Report {
	r := &Report{
		Workflow:             WorkflowUpload,
		ExerciseType:         state.ExerciseType,
		Phase:                state.Phase.String(),
		Message:              state.Result.Message,
		VideoRef:             state.Result.VideoURL,
		AvgInjuryProbability: state.Result.AvgInjuryProbability,
		GeneratedAt:          time.Now(),
	}
	if state.File != nil {
		r.File = state.File.Name
	}
	if state.Result.VideoURL != nil && resolve != nil {
		u := resolve(*state.Result.VideoURL)
		r.VideoURL = &u
	}
	if state.Err != nil {
		r.Error = state.Err.Error()
	}
	return r
}

// LiveReport builds a report from a live session snapshot
func LiveReport(state workflow.LiveState) *Report {
	r := &Report{
		Workflow:     WorkflowLive,
		ExerciseType: state.ExerciseType,
		Phase:        state.Phase.String(),
		GeneratedAt:  time.Now(),
	}
	if state.Message != "" {
		msg := state.Message
		r.Message = &msg
	}
	if state.Err != nil {
		r.Error = state.Err.Error()
	}
	return r
}

// Options controls terminal and Markdown rendering
type Options struct {
	Color bool
	Emoji bool
}

// New returns the formatter registered for the given format name
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return NewTerminal(opts.Color, opts.Emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(opts.Emoji), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
