package formatter

import (
	"strings"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/jim/internal/exercise"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, report)
	f.writeSubmission(&b, report)
	f.writeResult(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes a box-drawn header naming the workflow
func (f *terminalFormatter) writeHeader(b *strings.Builder, report *Report) {
	header := "Video Analysis"
	if report.Workflow == WorkflowLive {
		header = "Live Session"
	}
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSubmission writes what was submitted as a tree
func (f *terminalFormatter) writeSubmission(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Submission\n")

	items := []termfmt.TreeItem{
		{Label: "Exercise", Value: exerciseLabel(report.ExerciseType)},
	}
	if report.File != "" {
		items = append(items, termfmt.TreeItem{Label: "File", Value: report.File})
	}
	items = append(items, termfmt.TreeItem{
		Label: "Status",
		Value: getPhaseEmoji(report.Phase, f.opts) + " " + report.Phase,
		Last:  true,
	})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeResult writes each present result field independently
func (f *terminalFormatter) writeResult(b *strings.Builder, report *Report) {
	var items []termfmt.TreeItem

	if report.Message != nil {
		items = append(items, termfmt.TreeItem{Label: "Message", Value: *report.Message})
	}
	if report.VideoRef != nil {
		video := *report.VideoRef
		if report.VideoURL != nil {
			video = *report.VideoURL
		}
		items = append(items, termfmt.TreeItem{Label: "Processed Video", Value: video})
	}
	if report.AvgInjuryProbability != nil {
		item := termfmt.TreeItem{
			Label: "Avg Injury Probability",
			Value: formatProbability(report.AvgInjuryProbability),
		}
		if barEligible(report.AvgInjuryProbability) {
			item.Children = []termfmt.TreeItem{
				{Label: createConfidenceBar(*report.AvgInjuryProbability, f.opts), Last: true},
			}
		}
		items = append(items, item)
	}
	if report.Error != "" {
		items = append(items, termfmt.TreeItem{
			Label: termfmt.GetEmoji("error", f.opts) + " Cause",
			Value: report.Error,
		})
	}

	if len(items) == 0 {
		return
	}
	items[len(items)-1].Last = true

	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Result\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func exerciseLabel(t exercise.Type) string {
	if !t.IsSet() {
		return t.Label()
	}
	return t.Label() + " (" + t.String() + ")"
}
