package service

import (
	"io"
	"strconv"

	"github.com/yildizm/jim/internal/exercise"
)

// Multipart field names expected by the analysis service
const (
	FieldVideo            = "video"
	FieldExerciseType     = "exercise_type"
	FieldLiveExerciseType = "live_exercise_type"
)

// VideoUpload is one submission to the video analysis endpoint
type VideoUpload struct {
	ExerciseType exercise.Type
	FileName     string
	Content      io.Reader
}

// AnalysisResponse mirrors the JSON body of a successful submission. Every
// field is optional; nil means the key was absent.
type AnalysisResponse struct {
	Message              *string  `json:"message,omitempty"`
	VideoURL             *string  `json:"video_url,omitempty"`
	AvgInjuryProbability *float64 `json:"avg_injury_probability,omitempty"`
}

// FormatProbability renders a probability verbatim, without rounding
func FormatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
