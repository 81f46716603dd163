package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// CSVHeaders are the column names written by the CSV formatter
var CSVHeaders = []string{
	"Generated",
	"Workflow",
	"Exercise",
	"File",
	"Status",
	"Message",
	"Video URL",
	"Avg Injury Probability",
	"Error",
}

// csvFormatter formats a report as a CSV header plus one record
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := NewCSVWriter(&b)

	if err := writer.WriteHeader(); err != nil {
		return nil, err
	}
	if err := writer.Write(report); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// CSVWriter streams reports as CSV records, one per submission
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter wraps w for streaming report records
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column names
func (c *CSVWriter) WriteHeader() error {
	if err := c.w.Write(CSVHeaders); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	return c.flush()
}

// Write writes one report record
func (c *CSVWriter) Write(report *Report) error {
	video := deref(report.VideoRef)
	if report.VideoURL != nil {
		video = *report.VideoURL
	}

	record := []string{
		formatCSVTime(report.GeneratedAt),
		report.Workflow,
		report.ExerciseType.String(),
		report.File,
		report.Phase,
		escapeCSVString(deref(report.Message)),
		video,
		formatProbability(report.AvgInjuryProbability),
		escapeCSVString(report.Error),
	}
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("failed to write CSV record: %w", err)
	}
	return c.flush()
}

func (c *CSVWriter) flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// escapeCSVString flattens newlines and truncates long messages
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if len(s) > 200 {
		s = s[:197] + "..."
	}

	return s
}
