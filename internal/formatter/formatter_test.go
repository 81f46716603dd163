package formatter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/jim/internal/exercise"
	"github.com/yildizm/jim/internal/workflow"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func succeededUpload() *Report {
	state := workflow.UploadState{
		Phase:        workflow.PhaseSucceeded,
		ExerciseType: exercise.Squat,
		File:         &workflow.SelectedFile{Name: "lift.mp4"},
		Result: workflow.Result{
			Message:              str("done"),
			VideoURL:             str("out/squat.mp4"),
			AvgInjuryProbability: num(0.12),
		},
	}
	return UploadReport(state, func(ref string) string {
		return "http://localhost:5000/static/" + ref
	})
}

func TestUploadReport(t *testing.T) {
	r := succeededUpload()

	if r.Workflow != WorkflowUpload || r.File != "lift.mp4" {
		t.Errorf("Unexpected report header %+v", r)
	}
	if !r.Succeeded() {
		t.Error("Expected succeeded report")
	}
	if r.VideoURL == nil || *r.VideoURL != "http://localhost:5000/static/out/squat.mp4" {
		t.Errorf("Expected resolved video URL, got %v", r.VideoURL)
	}
	if *r.VideoRef != "out/squat.mp4" {
		t.Errorf("Expected raw reference kept, got %s", *r.VideoRef)
	}
}

func TestUploadReport_NoResolver(t *testing.T) {
	state := workflow.UploadState{
		Phase:  workflow.PhaseFailed,
		Result: workflow.Result{Message: str(workflow.UploadFailureMessage)},
		Err:    errors.New("connection refused"),
	}
	r := UploadReport(state, nil)

	if r.VideoURL != nil || r.VideoRef != nil {
		t.Error("Expected no video fields")
	}
	if r.Error != "connection refused" {
		t.Errorf("Expected cause recorded, got %q", r.Error)
	}
}

func TestLiveReport(t *testing.T) {
	r := LiveReport(workflow.LiveState{
		Phase:        workflow.PhaseSucceeded,
		ExerciseType: exercise.SumoDeadlift,
		Message:      workflow.LiveStartedMessage,
	})
	if r.Workflow != WorkflowLive || r.Message == nil || *r.Message != "Live session started" {
		t.Errorf("Unexpected live report %+v", r)
	}

	idle := LiveReport(workflow.LiveState{})
	if idle.Message != nil {
		t.Error("Expected no message for idle live state")
	}
}

func TestTerminalFormatter(t *testing.T) {
	out, err := NewTerminal(false, false).Format(succeededUpload())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{"Video Analysis", "Squat (squat)", "lift.mp4", "done", "http://localhost:5000/static/out/squat.mp4", "0.12"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, text)
		}
	}
}

func TestTerminalFormatter_FieldsIndependent(t *testing.T) {
	r := &Report{
		Workflow:             WorkflowUpload,
		ExerciseType:         exercise.FrontSquat,
		Phase:                "succeeded",
		AvgInjuryProbability: num(1.7),
	}
	out, err := NewTerminal(false, false).Format(r)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "1.7") {
		t.Errorf("Expected out-of-range probability rendered verbatim:\n%s", text)
	}
	if strings.Contains(text, "Message") || strings.Contains(text, "Processed Video") {
		t.Errorf("Expected absent fields omitted:\n%s", text)
	}
}

func TestTerminalFormatter_ZeroProbability(t *testing.T) {
	r := &Report{Workflow: WorkflowUpload, Phase: "succeeded", AvgInjuryProbability: num(0)}
	out, _ := NewTerminal(false, false).Format(r)
	if !strings.Contains(string(out), "Avg Injury Probability") {
		t.Errorf("Expected zero probability rendered:\n%s", out)
	}
}

func TestTerminalFormatter_Live(t *testing.T) {
	r := LiveReport(workflow.LiveState{
		Phase:        workflow.PhaseFailed,
		ExerciseType: exercise.Squat,
		Message:      workflow.LiveFailureMessage,
		Err:          errors.New("status 400"),
	})
	out, _ := NewTerminal(false, false).Format(r)
	text := string(out)

	if !strings.Contains(text, "Live Session") || !strings.Contains(text, workflow.LiveFailureMessage) {
		t.Errorf("Unexpected live output:\n%s", text)
	}
	if !strings.Contains(text, "status 400") {
		t.Errorf("Expected cause in output:\n%s", text)
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(succeededUpload())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	result, ok := decoded["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected result object, got %v", decoded["result"])
	}
	if result["video_url"] != "out/squat.mp4" {
		t.Errorf("Expected video_url out/squat.mp4, got %v", result["video_url"])
	}
	if result["avg_injury_probability"] != 0.12 {
		t.Errorf("Expected probability 0.12, got %v", result["avg_injury_probability"])
	}
	if decoded["exercise_type"] != "squat" {
		t.Errorf("Expected exercise squat, got %v", decoded["exercise_type"])
	}
}

func TestJSONFormatter_OmitsAbsent(t *testing.T) {
	out, _ := NewJSON().Format(&Report{Workflow: WorkflowUpload, Phase: "idle"})
	if strings.Contains(string(out), "video_url") || strings.Contains(string(out), "message") {
		t.Errorf("Expected absent fields omitted: %s", out)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown(true).Format(succeededUpload())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{"# Video Analysis Report", "| Exercise | Squat (squat) |", "[out/squat.mp4](http://localhost:5000/static/out/squat.mp4)", "**Avg Injury Probability**: 0.12"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected markdown to contain %q:\n%s", want, text)
		}
	}
}

func TestMarkdownFormatterHonorsOptions(t *testing.T) {
	r := succeededUpload()

	for _, emoji := range []bool{true, false} {
		f, err := New("markdown", Options{Color: true, Emoji: emoji})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		out, err := f.Format(r)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}

		opts := termfmt.DefaultOptions()
		opts.Color = false
		opts.Emoji = emoji
		want := "`" + termfmt.CreateConfidenceBar(*r.AvgInjuryProbability, opts) + "`"
		if !strings.Contains(string(out), want) {
			t.Errorf("emoji=%v: expected bar %q in:\n%s", emoji, want, out)
		}
		if strings.Contains(string(out), "\x1b[") {
			t.Errorf("emoji=%v: expected no ANSI escapes in markdown", emoji)
		}
	}
}

func TestCSVFormatter(t *testing.T) {
	r := succeededUpload()
	r.GeneratedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	out, err := NewCSV().Format(r)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one record, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Generated,Workflow,Exercise") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	want := "2024-05-01 10:00:00,upload,squat,lift.mp4,succeeded,done,http://localhost:5000/static/out/squat.mp4,0.12,"
	if lines[1] != want {
		t.Errorf("Expected record %q, got %q", want, lines[1])
	}
}

func TestEscapeCSVString(t *testing.T) {
	if got := escapeCSVString("a\nb\rc"); got != "a b c" {
		t.Errorf("Expected newlines flattened, got %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := escapeCSVString(long); len(got) != 200 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncation to 200 chars, got %d", len(got))
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "text", "json", "markdown", "md", "csv"} {
		if _, err := New(name, Options{}); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
	if _, err := New("xml", Options{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
