package formatter

import (
	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/jim/internal/service"
)

// formatProbability renders the score exactly as the service returned it
func formatProbability(p *float64) string {
	if p == nil {
		return ""
	}
	return service.FormatProbability(*p)
}

// barEligible reports whether a probability fits on a confidence bar
func barEligible(p *float64) bool {
	return p != nil && *p >= 0 && *p <= 1
}

// createConfidenceBar renders p as a go-termfmt bar with the caller's options
func createConfidenceBar(p float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(p, opts)
}

// getPhaseEmoji returns emoji for a submission phase using go-termfmt
func getPhaseEmoji(phase string, opts *termfmt.TerminalOptions) string {
	switch phase {
	case "failed":
		return termfmt.GetEmoji("error", opts)
	case "submitting":
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
