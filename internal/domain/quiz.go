package domain

import (
	"time"
)

// Difficulty is the requested difficulty level of a generated quiz.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
)

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyExpert:
		return true
	}
	return false
}

// DefaultDifficultyThreshold is the score below which a validated draft
// carries a quality warning.
const DefaultDifficultyThreshold = 70

// Question is a single multiple-choice question. Order within a quiz is
// presentation order; IDs are unique within the quiz.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

// Validate enforces the question invariants: at least two options and a
// correct answer that is one of them.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return NewValidationError("question", "is required")
	}
	if len(q.Options) < 2 {
		return NewValidationError("options", "at least two options are required")
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("correctAnswer", "is required")
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return NewValidationError("correctAnswer", "must equal one of the options")
}

// QuizDraft is the result of a generation run. It is created by the
// generation orchestrator, optionally annotated by the validation engine,
// and immutable once handed to the caller.
type QuizDraft struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []Question        `json:"questions"`
	AIModel     string            `json:"aiModel"`
	Warning     string            `json:"warning,omitempty"`
	Validation  *ValidationReport `json:"validation,omitempty"`
}

// Validate checks every question invariant of the draft.
func (d *QuizDraft) Validate() error {
	if d.Title == "" {
		return NewValidationError("title", "is required")
	}
	if len(d.Questions) == 0 {
		return NewValidationError("questions", "at least one question is required")
	}
	for i := range d.Questions {
		if err := d.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Quiz is a persisted quiz owned by a user. Drafts become quizzes when the
// caller stores them.
type Quiz struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Questions   []Question
	AIModel     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuiz builds a persisted quiz from a draft.
func NewQuiz(id, userID string, draft *QuizDraft) *Quiz {
	now := time.Now()
	return &Quiz{
		ID:          id,
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Questions:   draft.Questions,
		AIModel:     draft.AIModel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
