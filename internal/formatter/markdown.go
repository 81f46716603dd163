package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewMarkdown creates a Markdown formatter. Markdown never carries ANSI
// color; emoji follows the caller's choice.
func NewMarkdown(emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = false
	opts.Emoji = emoji
	return &markdownFormatter{opts: opts}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	title := "Video Analysis Report"
	if report.Workflow == WorkflowLive {
		title = "Live Session Report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeSubmissionTable(&b, report)
	f.writeResultSection(&b, report)

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by JIM - Just In Motion*\n")

	return []byte(b.String()), nil
}

// writeSubmissionTable writes the submission summary table
func (f *markdownFormatter) writeSubmissionTable(b *strings.Builder, report *Report) {
	b.WriteString("## Submission\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Exercise | %s |\n", exerciseLabel(report.ExerciseType))
	if report.File != "" {
		fmt.Fprintf(b, "| File | `%s` |\n", report.File)
	}
	fmt.Fprintf(b, "| Status | %s |\n\n", report.Phase)
}

// writeResultSection writes each present result field
func (f *markdownFormatter) writeResultSection(b *strings.Builder, report *Report) {
	if report.Message == nil && report.VideoRef == nil && report.AvgInjuryProbability == nil && report.Error == "" {
		return
	}

	b.WriteString("## Result\n\n")

	if report.Message != nil {
		fmt.Fprintf(b, "**Message**: %s\n\n", *report.Message)
	}
	if report.VideoRef != nil {
		if report.VideoURL != nil {
			fmt.Fprintf(b, "**Processed Video**: [%s](%s)\n\n", *report.VideoRef, *report.VideoURL)
		} else {
			fmt.Fprintf(b, "**Processed Video**: `%s`\n\n", *report.VideoRef)
		}
	}
	if report.AvgInjuryProbability != nil {
		fmt.Fprintf(b, "**Avg Injury Probability**: %s\n\n", formatProbability(report.AvgInjuryProbability))
		if barEligible(report.AvgInjuryProbability) {
			fmt.Fprintf(b, "`%s`\n\n", createConfidenceBar(*report.AvgInjuryProbability, f.opts))
		}
	}
	if report.Error != "" {
		b.WriteString("**Cause**:\n```\n" + report.Error + "\n```\n")
	}
}
