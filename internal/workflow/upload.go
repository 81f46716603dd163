package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/service"
)

// UploadFailureMessage replaces the message on any transport or protocol failure
const UploadFailureMessage = "Error uploading video. Please try again."

// VideoSubmitter sends a video to the analysis service
type VideoSubmitter interface {
	SubmitVideo(ctx context.Context, upload service.VideoUpload) (*service.AnalysisResponse, error)
}

// UploadState is a point-in-time copy of an upload workflow
type UploadState struct {
	Phase        Phase
	ExerciseType exercise.Type
	File         *SelectedFile
	Result       Result
	Err          error
}

// CanSubmit reports whether the submit control is enabled
func (s UploadState) CanSubmit() bool {
	return s.Phase != PhaseSubmitting && s.ExerciseType.IsSet() && s.File != nil
}

// UploadRequest is the selection captured when a submission begins
type UploadRequest struct {
	ExerciseType exercise.Type
	File         *SelectedFile
}

// Upload drives exercise selection, file selection, submission and result
// merging for recorded videos
type Upload struct {
	mu    sync.Mutex
	state UploadState
	log   *logger.Logger
}

// NewUpload creates an idle upload workflow. log may be nil.
func NewUpload(log *logger.Logger) *Upload {
	if log == nil {
		log = logger.New("upload", nil)
	}
	return &Upload{log: log}
}

// SelectExerciseType sets the exercise type
func (u *Upload) SelectExerciseType(t exercise.Type) error {
	if !t.Valid() {
		return fmt.Errorf("select exercise type: %w", errInvalidExercise(t))
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.ExerciseType = t
	return nil
}

// SelectFile sets or, with nil, clears the selected file
func (u *Upload) SelectFile(f *SelectedFile) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.File = f
}

// CanSubmit reports whether Begin would start a submission
func (u *Upload) CanSubmit() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.CanSubmit()
}

// Begin moves to submitting and returns the captured selection. It is a
// no-op returning false when a selection is missing or a request is in flight.
func (u *Upload) Begin() (UploadRequest, bool) {
	req, err := u.begin()
	return req, err == nil
}

func (u *Upload) begin() (UploadRequest, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	ready := u.state.ExerciseType.IsSet() && u.state.File != nil
	if err := u.state.Phase.begin(ready); err != nil {
		u.log.Debug("upload not started: %v", err)
		return UploadRequest{}, err
	}
	u.state.Err = nil

	return UploadRequest{ExerciseType: u.state.ExerciseType, File: u.state.File}, nil
}

// Complete merges a successful response into the result
func (u *Upload) Complete(resp *service.AnalysisResponse) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.state.Phase.settle(true) {
		u.log.Warn("ignoring upload response with no submission in flight")
		return
	}
	u.state.Result = u.state.Result.Merge(resp)
	u.log.InfoWithFields("upload analyzed", []logger.Field{
		logger.F("exercise_type", u.state.ExerciseType.String()),
	})
}

// Fail records a transport or protocol failure. Only the message changes.
func (u *Upload) Fail(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.state.Phase.settle(false) {
		u.log.Warn("ignoring upload failure with no submission in flight: %v", err)
		return
	}
	u.state.Err = err
	u.state.Result.Message = copyString(UploadFailureMessage)
	u.log.ErrorWithFields("upload error", []logger.Field{logger.Error(err)})
}

// Submit runs one full submission against s. It returns ErrNotReady or
// ErrInFlight without sending anything when gated, otherwise the request
// error, which has already been folded into the state.
func (u *Upload) Submit(ctx context.Context, s VideoSubmitter) error {
	req, err := u.begin()
	if err != nil {
		return err
	}

	resp, err := Send(ctx, s, req)
	if err != nil {
		u.Fail(err)
		return err
	}
	u.Complete(resp)
	return nil
}

// Send performs the request for a begun submission without touching state
func Send(ctx context.Context, s VideoSubmitter, req UploadRequest) (*service.AnalysisResponse, error) {
	content, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req.File.Name, err)
	}
	defer func() { _ = content.Close() }()

	return s.SubmitVideo(ctx, service.VideoUpload{
		ExerciseType: req.ExerciseType,
		FileName:     req.File.Name,
		Content:      content,
	})
}

// Snapshot returns a copy of the current state
func (u *Upload) Snapshot() UploadState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func errInvalidExercise(t exercise.Type) error {
	_, err := exercise.Parse(string(t))
	return err
}
