package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/logger"
)

const (
	// LiveStartedMessage acknowledges an accepted live session request
	LiveStartedMessage = "Live session started"

	// LiveFailureMessage replaces the message on any transport or protocol failure
	LiveFailureMessage = "Error starting live session. Please try again."
)

// LiveStarter asks the analysis service to start a live session
type LiveStarter interface {
	StartLive(ctx context.Context, exerciseType exercise.Type) error
}

// LiveState is a point-in-time copy of a live session workflow
type LiveState struct {
	Phase        Phase
	ExerciseType exercise.Type
	Message      string
	Err          error
}

// CanSubmit reports whether the start control is enabled
func (s LiveState) CanSubmit() bool {
	return s.Phase != PhaseSubmitting && s.ExerciseType.IsSet()
}

// Live drives exercise selection and live session initiation. Session
// identity and the stream itself are not tracked.
type Live struct {
	mu    sync.Mutex
	state LiveState
	log   *logger.Logger
}

// NewLive creates an idle live session workflow. log may be nil.
func NewLive(log *logger.Logger) *Live {
	if log == nil {
		log = logger.New("live", nil)
	}
	return &Live{log: log}
}

// SelectExerciseType sets the exercise type
func (l *Live) SelectExerciseType(t exercise.Type) error {
	if !t.Valid() {
		return fmt.Errorf("select exercise type: %w", errInvalidExercise(t))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.ExerciseType = t
	return nil
}

// CanSubmit reports whether Begin would start a submission
func (l *Live) CanSubmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.CanSubmit()
}

// Begin moves to submitting and returns the selected exercise type
func (l *Live) Begin() (exercise.Type, bool) {
	t, err := l.begin()
	return t, err == nil
}

func (l *Live) begin() (exercise.Type, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.state.Phase.begin(l.state.ExerciseType.IsSet()); err != nil {
		l.log.Debug("live session not started: %v", err)
		return "", err
	}
	l.state.Err = nil

	return l.state.ExerciseType, nil
}

// Complete acknowledges an accepted live session request
func (l *Live) Complete() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.state.Phase.settle(true) {
		l.log.Warn("ignoring live acknowledgement with no submission in flight")
		return
	}
	l.state.Message = LiveStartedMessage
	l.log.InfoWithFields("live stream started", []logger.Field{
		logger.F("exercise_type", l.state.ExerciseType.String()),
	})
}

// Fail records a failure on both the state and the diagnostic log
func (l *Live) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.state.Phase.settle(false) {
		l.log.Warn("ignoring live failure with no submission in flight: %v", err)
		return
	}
	l.state.Err = err
	l.state.Message = LiveFailureMessage
	l.log.ErrorWithFields("live stream error", []logger.Field{logger.Error(err)})
}

// Submit runs one full live session request against s
func (l *Live) Submit(ctx context.Context, s LiveStarter) error {
	t, err := l.begin()
	if err != nil {
		return err
	}

	if err := s.StartLive(ctx, t); err != nil {
		l.Fail(err)
		return err
	}
	l.Complete()
	return nil
}

// Snapshot returns a copy of the current state
func (l *Live) Snapshot() LiveState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}
