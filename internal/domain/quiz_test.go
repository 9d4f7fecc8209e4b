package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		ID:            "1",
		QuestionText:  "What produces ATP?",
		Options:       []string{"Mitochondria", "Nucleus", "Ribosome", "Vacuole"},
		CorrectAnswer: "Mitochondria",
	}
}

func TestQuestionValidate(t *testing.T) {
	q := validQuestion()
	assert.NoError(t, q.Validate())
}

func TestQuestionValidateCorrectAnswerMustBeAnOption(t *testing.T) {
	q := validQuestion()
	q.CorrectAnswer = "Chloroplast"
	assert.Error(t, q.Validate())
}

func TestQuestionValidateRequiresTwoOptions(t *testing.T) {
	q := validQuestion()
	q.Options = []string{"Mitochondria"}
	q.CorrectAnswer = "Mitochondria"
	assert.Error(t, q.Validate())
}

func TestQuestionValidateRequiresText(t *testing.T) {
	q := validQuestion()
	q.QuestionText = ""
	assert.Error(t, q.Validate())
}

func TestQuizDraftValidate(t *testing.T) {
	draft := &QuizDraft{
		Title:     "Cell Biology",
		Questions: []Question{validQuestion()},
	}
	assert.NoError(t, draft.Validate())

	draft.Title = ""
	assert.Error(t, draft.Validate())

	draft.Title = "Cell Biology"
	draft.Questions = nil
	assert.Error(t, draft.Validate())
}

func TestDifficultyIsValid(t *testing.T) {
	assert.True(t, DifficultyBeginner.IsValid())
	assert.True(t, DifficultyIntermediate.IsValid())
	assert.True(t, DifficultyExpert.IsValid())
	assert.False(t, Difficulty("impossible").IsValid())
	assert.False(t, Difficulty("").IsValid())
}

func TestGenerationParametersApplyDefaults(t *testing.T) {
	p := GenerationParameters{}
	p.ApplyDefaults()

	assert.Equal(t, 1, p.QuestionCount)
	assert.Equal(t, DifficultyIntermediate, p.Difficulty)
	assert.Equal(t, DefaultDifficultyThreshold, p.DifficultyThreshold)
}

func TestGenerationParametersApplyDefaultsKeepsExplicitValues(t *testing.T) {
	p := GenerationParameters{QuestionCount: 15, Difficulty: DifficultyExpert, DifficultyThreshold: 90}
	p.ApplyDefaults()

	assert.Equal(t, 15, p.QuestionCount)
	assert.Equal(t, DifficultyExpert, p.Difficulty)
	assert.Equal(t, 90, p.DifficultyThreshold)
}

func TestGenerationParametersValidate(t *testing.T) {
	p := GenerationParameters{QuestionCount: 10, Difficulty: DifficultyBeginner, DifficultyThreshold: 70}
	assert.Empty(t, p.Validate())

	bad := GenerationParameters{QuestionCount: 0, Difficulty: "impossible", DifficultyThreshold: 150}
	errs := bad.Validate()
	require.Len(t, errs, 3)
}

func TestNewQuizCopiesDraft(t *testing.T) {
	draft := &QuizDraft{
		Title:       "Cell Biology",
		Description: "Basics",
		Questions:   []Question{validQuestion()},
		AIModel:     "gpt-4o-mini",
	}

	quiz := NewQuiz("q1", "user-1", draft)

	assert.Equal(t, "q1", quiz.ID)
	assert.Equal(t, "user-1", quiz.UserID)
	assert.Equal(t, draft.Title, quiz.Title)
	assert.Equal(t, draft.AIModel, quiz.AIModel)
	assert.False(t, quiz.CreatedAt.IsZero())
	assert.Equal(t, quiz.CreatedAt, quiz.UpdatedAt)
}
