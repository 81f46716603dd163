package workflow

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/logger"
	"github.com/yildizm/jim/internal/service"
)

type fakeService struct {
	calls    int
	uploads  []service.VideoUpload
	contents []string
	live     []exercise.Type
	resp     *service.AnalysisResponse
	err      error
}

func (f *fakeService) SubmitVideo(_ context.Context, upload service.VideoUpload) (*service.AnalysisResponse, error) {
	f.calls++
	data, _ := io.ReadAll(upload.Content)
	f.uploads = append(f.uploads, upload)
	f.contents = append(f.contents, string(data))
	return f.resp, f.err
}

func (f *fakeService) StartLive(_ context.Context, t exercise.Type) error {
	f.calls++
	f.live = append(f.live, t)
	return f.err
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter("test", func() bool { return false }, io.Discard)
}

func memFile(name, content string) *SelectedFile {
	return NewSelectedFile(name, int64(len(content)), func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	})
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func TestUpload_CanSubmit(t *testing.T) {
	tests := []struct {
		name     string
		exercise exercise.Type
		file     *SelectedFile
		want     bool
	}{
		{"nothing selected", "", nil, false},
		{"exercise only", exercise.Squat, nil, false},
		{"file only", "", memFile("lift.mp4", "x"), false},
		{"both selected", exercise.Squat, memFile("lift.mp4", "x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUpload(quietLogger())
			if tt.exercise != "" {
				if err := u.SelectExerciseType(tt.exercise); err != nil {
					t.Fatalf("SelectExerciseType failed: %v", err)
				}
			}
			u.SelectFile(tt.file)
			if got := u.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpload_SubmitGatedIssuesNoRequest(t *testing.T) {
	svc := &fakeService{}
	u := NewUpload(quietLogger())

	if err := u.Submit(context.Background(), svc); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
	_ = u.SelectExerciseType(exercise.Squat)
	if err := u.Submit(context.Background(), svc); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady without a file, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("Expected zero requests, got %d", svc.calls)
	}
	if u.Snapshot().Phase != PhaseIdle {
		t.Errorf("Expected idle phase, got %s", u.Snapshot().Phase)
	}
}

func TestUpload_SubmitSendsOneRequest(t *testing.T) {
	for _, typ := range exercise.All {
		t.Run(typ.String(), func(t *testing.T) {
			svc := &fakeService{resp: &service.AnalysisResponse{}}
			u := NewUpload(quietLogger())
			_ = u.SelectExerciseType(typ)
			u.SelectFile(memFile("lift.mp4", "frames"))

			if err := u.Submit(context.Background(), svc); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			if svc.calls != 1 {
				t.Fatalf("Expected exactly one request, got %d", svc.calls)
			}
			got := svc.uploads[0]
			if got.ExerciseType != typ {
				t.Errorf("Expected exercise %s, got %s", typ, got.ExerciseType)
			}
			if got.FileName != "lift.mp4" || svc.contents[0] != "frames" {
				t.Errorf("Expected lift.mp4 with content 'frames', got %s with %q", got.FileName, svc.contents[0])
			}
		})
	}
}

func TestUpload_Scenario(t *testing.T) {
	svc := &fakeService{resp: &service.AnalysisResponse{
		Message:              str("done"),
		VideoURL:             str("out/squat.mp4"),
		AvgInjuryProbability: num(0.12),
	}}
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("lift.mp4", "frames"))

	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	state := u.Snapshot()
	if state.Phase != PhaseSucceeded {
		t.Errorf("Expected succeeded, got %s", state.Phase)
	}
	if state.Result.Message == nil || *state.Result.Message != "done" {
		t.Errorf("Expected message 'done', got %v", state.Result.Message)
	}
	if state.Result.VideoURL == nil || *state.Result.VideoURL != "out/squat.mp4" {
		t.Errorf("Expected video out/squat.mp4, got %v", state.Result.VideoURL)
	}
	if state.Result.AvgInjuryProbability == nil || service.FormatProbability(*state.Result.AvgInjuryProbability) != "0.12" {
		t.Errorf("Expected probability 0.12, got %v", state.Result.AvgInjuryProbability)
	}
}

func TestUpload_PartialResponseMerges(t *testing.T) {
	svc := &fakeService{resp: &service.AnalysisResponse{
		Message:              str("first"),
		VideoURL:             str("first.mp4"),
		AvgInjuryProbability: num(0.4),
	}}
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("lift.mp4", "x"))
	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	svc.resp = &service.AnalysisResponse{VideoURL: str("abc.mp4")}
	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}

	result := u.Snapshot().Result
	if *result.VideoURL != "abc.mp4" {
		t.Errorf("Expected video abc.mp4, got %s", *result.VideoURL)
	}
	if *result.Message != "first" {
		t.Errorf("Expected message retained as 'first', got %s", *result.Message)
	}
	if *result.AvgInjuryProbability != 0.4 {
		t.Errorf("Expected probability retained as 0.4, got %v", *result.AvgInjuryProbability)
	}
}

func TestUpload_ZeroProbabilityIsPresent(t *testing.T) {
	svc := &fakeService{resp: &service.AnalysisResponse{AvgInjuryProbability: num(0)}}
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.FrontSquat)
	u.SelectFile(memFile("a.mp4", "x"))

	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	p := u.Snapshot().Result.AvgInjuryProbability
	if p == nil {
		t.Fatal("Expected zero probability to be treated as present")
	}
	if service.FormatProbability(*p) != "0" {
		t.Errorf("Expected rendered '0', got %q", service.FormatProbability(*p))
	}
}

func TestUpload_EmptyStringsKeepPreviousResult(t *testing.T) {
	svc := &fakeService{resp: &service.AnalysisResponse{
		Message:              str("done"),
		VideoURL:             str("out/a.mp4"),
		AvgInjuryProbability: num(0.3),
	}}
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("a.mp4", "x"))
	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}

	svc.resp = &service.AnalysisResponse{Message: str(""), VideoURL: str(""), AvgInjuryProbability: num(0)}
	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}

	result := u.Snapshot().Result
	if result.Message == nil || *result.Message != "done" {
		t.Errorf("Expected message kept as 'done', got %v", result.Message)
	}
	if result.VideoURL == nil || *result.VideoURL != "out/a.mp4" {
		t.Errorf("Expected video kept as out/a.mp4, got %v", result.VideoURL)
	}
	if result.AvgInjuryProbability == nil || *result.AvgInjuryProbability != 0 {
		t.Errorf("Expected probability replaced by 0, got %v", result.AvgInjuryProbability)
	}
}

func TestResult_Merge(t *testing.T) {
	prev := Result{Message: str("done"), VideoURL: str("out/a.mp4"), AvgInjuryProbability: num(0.5)}

	tests := []struct {
		name        string
		resp        *service.AnalysisResponse
		wantMessage string
		wantVideo   string
		wantProb    float64
	}{
		{"nil response", nil, "done", "out/a.mp4", 0.5},
		{"all absent", &service.AnalysisResponse{}, "done", "out/a.mp4", 0.5},
		{"empty strings", &service.AnalysisResponse{Message: str(""), VideoURL: str("")}, "done", "out/a.mp4", 0.5},
		{"new values", &service.AnalysisResponse{Message: str("again"), VideoURL: str("out/b.mp4"), AvgInjuryProbability: num(0.9)}, "again", "out/b.mp4", 0.9},
		{"zero probability", &service.AnalysisResponse{AvgInjuryProbability: num(0)}, "done", "out/a.mp4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prev.Merge(tt.resp)
			if got.Message == nil || *got.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %v", tt.wantMessage, got.Message)
			}
			if got.VideoURL == nil || *got.VideoURL != tt.wantVideo {
				t.Errorf("Expected video %q, got %v", tt.wantVideo, got.VideoURL)
			}
			if got.AvgInjuryProbability == nil || *got.AvgInjuryProbability != tt.wantProb {
				t.Errorf("Expected probability %v, got %v", tt.wantProb, got.AvgInjuryProbability)
			}
		})
	}

	if *prev.Message != "done" {
		t.Errorf("Expected receiver unchanged, got %q", *prev.Message)
	}
}

func TestResult_MergeEmptyOverNothing(t *testing.T) {
	got := Result{}.Merge(&service.AnalysisResponse{Message: str(""), VideoURL: str("")})
	if !got.Empty() {
		t.Errorf("Expected empty strings to stay absent, got %+v", got)
	}
}

func TestUpload_TransportFailure(t *testing.T) {
	svc := &fakeService{resp: &service.AnalysisResponse{
		Message:              str("done"),
		VideoURL:             str("out/squat.mp4"),
		AvgInjuryProbability: num(0.12),
	}}
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("lift.mp4", "x"))
	if err := u.Submit(context.Background(), svc); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	svc.err = &service.Error{Type: service.ErrTypeNetwork, Message: "request failed"}
	svc.resp = nil
	err := u.Submit(context.Background(), svc)
	if !errors.Is(err, service.ErrNetwork) {
		t.Fatalf("Expected network error, got %v", err)
	}

	state := u.Snapshot()
	if state.Phase != PhaseFailed {
		t.Errorf("Expected failed phase, got %s", state.Phase)
	}
	if *state.Result.Message != "Error uploading video. Please try again." {
		t.Errorf("Unexpected failure message %q", *state.Result.Message)
	}
	if *state.Result.VideoURL != "out/squat.mp4" || *state.Result.AvgInjuryProbability != 0.12 {
		t.Errorf("Expected other fields untouched, got %+v", state.Result)
	}
	if state.Err == nil {
		t.Error("Expected error recorded on state")
	}
}

func TestUpload_FailureBeforeAnySuccess(t *testing.T) {
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("lift.mp4", "x"))

	_ = u.Submit(context.Background(), &fakeService{err: errors.New("connection refused")})

	result := u.Snapshot().Result
	if result.Message == nil || *result.Message != UploadFailureMessage {
		t.Errorf("Expected failure message, got %v", result.Message)
	}
	if result.VideoURL != nil || result.AvgInjuryProbability != nil {
		t.Errorf("Expected no video or probability, got %+v", result)
	}
}

func TestUpload_InFlightLock(t *testing.T) {
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("lift.mp4", "x"))

	req, ok := u.Begin()
	if !ok {
		t.Fatal("Expected first Begin to succeed")
	}
	if req.ExerciseType != exercise.Squat || req.File.Name != "lift.mp4" {
		t.Errorf("Unexpected request snapshot %+v", req)
	}
	if u.CanSubmit() {
		t.Error("Expected submit control disabled while in flight")
	}
	if _, ok := u.Begin(); ok {
		t.Error("Expected second Begin to be refused while in flight")
	}

	svc := &fakeService{}
	if err := u.Submit(context.Background(), svc); !errors.Is(err, ErrInFlight) {
		t.Errorf("Expected ErrInFlight, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("Expected no request while in flight, got %d", svc.calls)
	}

	u.Complete(&service.AnalysisResponse{Message: str("ok")})
	if !u.CanSubmit() {
		t.Error("Expected submit control enabled after resolution")
	}
}

func TestUpload_StaleResolutionIgnored(t *testing.T) {
	u := NewUpload(quietLogger())
	u.Complete(&service.AnalysisResponse{Message: str("late")})
	u.Fail(errors.New("late"))

	state := u.Snapshot()
	if state.Phase != PhaseIdle || !state.Result.Empty() {
		t.Errorf("Expected untouched idle state, got %+v", state)
	}
}

func TestUpload_SelectionChanges(t *testing.T) {
	u := NewUpload(quietLogger())
	if err := u.SelectExerciseType("bench_press"); err == nil {
		t.Error("Expected error for exercise outside the fixed set")
	}

	u.SelectFile(memFile("a.mp4", "x"))
	u.SelectFile(nil)
	if u.Snapshot().File != nil {
		t.Error("Expected file cleared")
	}
}

func TestUpload_OpenFailure(t *testing.T) {
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(NewSelectedFile("gone.mp4", 0, func() (io.ReadCloser, error) {
		return nil, os.ErrNotExist
	}))

	svc := &fakeService{}
	if err := u.Submit(context.Background(), svc); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("Expected no request, got %d", svc.calls)
	}
	if *u.Snapshot().Result.Message != UploadFailureMessage {
		t.Errorf("Expected failure message")
	}
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lift.mp4")
	if err := os.WriteFile(path, []byte("frames"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f, err := FileFromPath(path)
	if err != nil {
		t.Fatalf("FileFromPath failed: %v", err)
	}
	if f.Name != "lift.mp4" || f.Size != 6 {
		t.Errorf("Unexpected file %+v", f)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, _ := io.ReadAll(rc)
	if string(data) != "frames" {
		t.Errorf("Expected 'frames', got %q", data)
	}

	if _, err := FileFromPath(dir); err == nil {
		t.Error("Expected error for directory")
	}
	if _, err := FileFromPath(filepath.Join(dir, "missing.mp4")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLive_SubmitWithoutExercise(t *testing.T) {
	svc := &fakeService{}
	l := NewLive(quietLogger())

	if l.CanSubmit() {
		t.Error("Expected start control disabled without exercise")
	}
	if err := l.Submit(context.Background(), svc); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("Expected zero requests, got %d", svc.calls)
	}
}

func TestLive_Submit(t *testing.T) {
	svc := &fakeService{}
	l := NewLive(quietLogger())
	if err := l.SelectExerciseType(exercise.RomanianDeadlift); err != nil {
		t.Fatalf("SelectExerciseType failed: %v", err)
	}
	if !l.CanSubmit() {
		t.Fatal("Expected start control enabled")
	}

	if err := l.Submit(context.Background(), svc); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if svc.calls != 1 || svc.live[0] != exercise.RomanianDeadlift {
		t.Errorf("Expected one request for romanian_deadlift, got %v", svc.live)
	}

	state := l.Snapshot()
	if state.Phase != PhaseSucceeded || state.Message != LiveStartedMessage {
		t.Errorf("Unexpected state %+v", state)
	}
}

func TestLive_Failure(t *testing.T) {
	svc := &fakeService{err: &service.Error{Type: service.ErrTypeStatus, StatusCode: 400}}
	l := NewLive(quietLogger())
	_ = l.SelectExerciseType(exercise.Squat)

	if err := l.Submit(context.Background(), svc); !errors.Is(err, service.ErrStatus) {
		t.Fatalf("Expected status error, got %v", err)
	}
	state := l.Snapshot()
	if state.Phase != PhaseFailed {
		t.Errorf("Expected failed, got %s", state.Phase)
	}
	if state.Message != LiveFailureMessage {
		t.Errorf("Expected unified failure message, got %q", state.Message)
	}

	// recovery is a manual re-submit
	svc.err = nil
	if err := l.Submit(context.Background(), svc); err != nil {
		t.Fatalf("Expected re-submit to succeed, got %v", err)
	}
	if l.Snapshot().Message != LiveStartedMessage {
		t.Errorf("Expected acknowledgement after re-submit")
	}
}

func TestLive_InFlightLock(t *testing.T) {
	l := NewLive(quietLogger())
	_ = l.SelectExerciseType(exercise.Squat)

	if _, ok := l.Begin(); !ok {
		t.Fatal("Expected Begin to succeed")
	}
	if l.CanSubmit() {
		t.Error("Expected control disabled while in flight")
	}
	if _, ok := l.Begin(); ok {
		t.Error("Expected second Begin refused")
	}
	l.Fail(errors.New("unreachable"))
	if !l.CanSubmit() {
		t.Error("Expected control enabled after failure")
	}
}

func TestPhaseTransitions(t *testing.T) {
	var p Phase
	if err := p.begin(false); !errors.Is(err, ErrNotReady) || p != PhaseIdle {
		t.Errorf("Expected ErrNotReady and idle, got %v and %s", err, p)
	}
	if p.settle(true) {
		t.Error("Expected settle with nothing in flight to be rejected")
	}
	if err := p.begin(true); err != nil || p != PhaseSubmitting {
		t.Fatalf("Expected submitting, got %v and %s", err, p)
	}
	if err := p.begin(true); !errors.Is(err, ErrInFlight) || p != PhaseSubmitting {
		t.Errorf("Expected ErrInFlight while submitting, got %v and %s", err, p)
	}
	if !p.settle(false) || p != PhaseFailed {
		t.Errorf("Expected failed after settle(false), got %s", p)
	}
	if p.settle(true) || p != PhaseFailed {
		t.Errorf("Expected second settle ignored, got %s", p)
	}
	if err := p.begin(true); err != nil || !p.settle(true) || p != PhaseSucceeded {
		t.Errorf("Expected resubmission to succeed, got %v and %s", err, p)
	}
}

func TestUpload_SnapshotTracksPhase(t *testing.T) {
	u := NewUpload(quietLogger())
	_ = u.SelectExerciseType(exercise.Squat)
	u.SelectFile(memFile("a.mp4", "x"))

	if _, ok := u.Begin(); !ok {
		t.Fatal("Expected Begin to start")
	}
	if got := u.Snapshot().Phase; got != PhaseSubmitting {
		t.Errorf("Expected submitting snapshot, got %s", got)
	}
	u.Fail(errors.New("boom"))
	if got := u.Snapshot().Phase; got != PhaseFailed {
		t.Errorf("Expected failed snapshot, got %s", got)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:       "idle",
		PhaseSubmitting: "submitting",
		PhaseSucceeded:  "succeeded",
		PhaseFailed:     "failed",
		Phase(9):        "phase(9)",
	}
	for phase, want := range tests {
		if phase.String() != want {
			t.Errorf("Expected %s, got %s", want, phase.String())
		}
	}
}
