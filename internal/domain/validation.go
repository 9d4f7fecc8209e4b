package domain

import "fmt"

// DifficultyRating classifies how one question sits against the requested
// difficulty level.
type DifficultyRating string

const (
	RatingTooEasy     DifficultyRating = "too_easy"
	RatingAppropriate DifficultyRating = "appropriate"
	RatingTooHard     DifficultyRating = "too_hard"
)

// QuestionEvaluation is the per-question portion of a validation report.
type QuestionEvaluation struct {
	QuestionID       string           `json:"questionId"`
	Score            int              `json:"score"`
	DifficultyRating DifficultyRating `json:"difficultyRating"`
	Issues           []string         `json:"issues,omitempty"`
	Suggestions      []string         `json:"suggestions,omitempty"`
}

// ValidationReport is the scored quality assessment of a quiz draft. The
// alignment policy mutates OverallScore and OverallFeedback after parsing;
// the mutated report, not the raw model score, is authoritative.
type ValidationReport struct {
	OverallScore        int                  `json:"overallScore"`
	PerQuestion         []QuestionEvaluation `json:"perQuestion"`
	DifficultyAlignment int                  `json:"difficultyAlignment"`
	OverallFeedback     string               `json:"overallFeedback"`
}

// AlignmentThresholds is the per-difficulty minimum alignment score. A
// request-level DifficultyThreshold overrides the table entry.
var AlignmentThresholds = map[Difficulty]int{
	DifficultyBeginner:     70,
	DifficultyIntermediate: 75,
	DifficultyExpert:       80,
}

// AlignmentThreshold returns the minimum acceptable difficulty alignment
// for the given level.
func AlignmentThreshold(d Difficulty) int {
	if t, ok := AlignmentThresholds[d]; ok {
		return t
	}
	return AlignmentThresholds[DifficultyIntermediate]
}

// ApplyAlignmentPolicy clamps the overall score when the measured difficulty
// alignment falls below the threshold, and appends an explanatory sentence
// naming the measured alignment and the expected level.
func (r *ValidationReport) ApplyAlignmentPolicy(difficulty Difficulty, threshold int) {
	if r.DifficultyAlignment >= threshold {
		return
	}
	if r.DifficultyAlignment < r.OverallScore {
		r.OverallScore = r.DifficultyAlignment
	}
	note := fmt.Sprintf(
		"Difficulty alignment score of %d is below the %d required for %s level; the overall score has been capped accordingly.",
		r.DifficultyAlignment, threshold, difficulty)
	if r.OverallFeedback != "" {
		r.OverallFeedback += " " + note
	} else {
		r.OverallFeedback = note
	}
}
