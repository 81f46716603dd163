package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(createReportOutput(report), "", "  ")
}

// ReportOutput is the JSON shape of a report. Result fields keep the
// service's field names and are omitted when absent.
type ReportOutput struct {
	Workflow     string        `json:"workflow"`
	ExerciseType string        `json:"exercise_type"`
	File         string        `json:"file,omitempty"`
	Phase        string        `json:"phase"`
	Result       *ResultOutput `json:"result"`
	Error        string        `json:"error,omitempty"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

// ResultOutput represents the merged analysis result
type ResultOutput struct {
	Message              *string  `json:"message,omitempty"`
	VideoURL             *string  `json:"video_url,omitempty"`
	VideoLink            *string  `json:"video_link,omitempty"`
	AvgInjuryProbability *float64 `json:"avg_injury_probability,omitempty"`
}

// createReportOutput maps a report onto its JSON shape
func createReportOutput(report *Report) *ReportOutput {
	return &ReportOutput{
		Workflow:     report.Workflow,
		ExerciseType: report.ExerciseType.String(),
		File:         report.File,
		Phase:        report.Phase,
		Result: &ResultOutput{
			Message:              report.Message,
			VideoURL:             report.VideoRef,
			VideoLink:            report.VideoURL,
			AvgInjuryProbability: report.AvgInjuryProbability,
		},
		Error:       report.Error,
		GeneratedAt: report.GeneratedAt,
	}
}
