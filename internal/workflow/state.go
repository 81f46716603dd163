package workflow

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yildizm/jim/internal/service"
)

// Phase is the submission state of a workflow
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrNotReady is returned when a required selection is missing
	ErrNotReady = errors.New("workflow: required selection missing")

	// ErrInFlight is returned while a previous submission is unresolved
	ErrInFlight = errors.New("workflow: submission already in flight")
)

// begin is the submission pattern both workflows share: at most one request
// in flight. The phase only moves to submitting when the selection is ready.
func (p *Phase) begin(ready bool) error {
	if *p == PhaseSubmitting {
		return ErrInFlight
	}
	if !ready {
		return ErrNotReady
	}
	*p = PhaseSubmitting
	return nil
}

// settle resolves the in-flight request and reports whether it was accepted.
// Resolutions arriving with nothing in flight are stale.
func (p *Phase) settle(ok bool) bool {
	if *p != PhaseSubmitting {
		return false
	}
	if ok {
		*p = PhaseSucceeded
	} else {
		*p = PhaseFailed
	}
	return true
}

// Result is the rendered outcome of upload submissions. Each field is
// optional and rendered on its own.
type Result struct {
	Message              *string
	VideoURL             *string
	AvgInjuryProbability *float64
}

// Merge overlays the fields present in resp. Absent fields, and empty
// message or video_url strings, keep their previous value so a partial
// response never erases earlier output. A zero probability is present.
func (r Result) Merge(resp *service.AnalysisResponse) Result {
	if resp == nil {
		return r
	}
	if resp.Message != nil && *resp.Message != "" {
		r.Message = copyString(*resp.Message)
	}
	if resp.VideoURL != nil && *resp.VideoURL != "" {
		r.VideoURL = copyString(*resp.VideoURL)
	}
	if resp.AvgInjuryProbability != nil {
		p := *resp.AvgInjuryProbability
		r.AvgInjuryProbability = &p
	}
	return r
}

// Empty reports whether nothing has been rendered yet
func (r Result) Empty() bool {
	return r.Message == nil && r.VideoURL == nil && r.AvgInjuryProbability == nil
}

func copyString(s string) *string {
	return &s
}

// SelectedFile is a video chosen for upload
type SelectedFile struct {
	Name string
	Path string
	Size int64
	open func() (io.ReadCloser, error)
}

// FileFromPath selects a file on disk. Content type and size are left to
// the picker and the service.
func FileFromPath(path string) (*SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot upload directory, must be a file: %s", path)
	}

	return &SelectedFile{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			// #nosec G304 - path chosen by the user
			return os.Open(path)
		},
	}, nil
}

// NewSelectedFile wraps an arbitrary content source
func NewSelectedFile(name string, size int64, open func() (io.ReadCloser, error)) *SelectedFile {
	return &SelectedFile{Name: name, Size: size, open: open}
}

// Open returns a reader over the file content
func (f *SelectedFile) Open() (io.ReadCloser, error) {
	if f == nil || f.open == nil {
		return nil, fmt.Errorf("no file content")
	}
	return f.open()
}
