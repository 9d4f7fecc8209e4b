package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"quiz-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleDraft() *domain.QuizDraft {
	return &domain.QuizDraft{
		Title:       "Cell Biology",
		Description: "Basics of the cell",
		Questions: []domain.Question{
			{ID: "1", QuestionText: "What produces ATP?", Options: []string{"Mitochondria", "Nucleus", "Ribosome", "Vacuole"}, CorrectAnswer: "Mitochondria"},
		},
		AIModel: "gpt-4o-mini",
	}
}

func reportResponse(overall, alignment int) string {
	return fmt.Sprintf(`{
		"overallScore": %d,
		"perQuestion": [
			{"questionId": "1", "score": 80, "difficultyRating": "appropriate", "issues": [], "suggestions": []}
		],
		"difficultyAlignment": %d,
		"overallFeedback": "Solid quiz overall."
	}`, overall, alignment)
}

func TestValidateClampsScoreOnLowAlignment(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reportResponse(85, 60), nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyIntermediate, DifficultyThreshold: 70}

	report, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.NoError(t, err)
	// Intermediate requires alignment of 75; 60 clamps the overall score.
	assert.Equal(t, 60, report.OverallScore)
	assert.Equal(t, 60, report.DifficultyAlignment)
	assert.Contains(t, report.OverallFeedback, "Difficulty alignment score of 60 is below the 75 required for intermediate level")
}

func TestValidateLeavesAlignedReportUntouched(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reportResponse(85, 80), nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyIntermediate, DifficultyThreshold: 70}

	report, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.NoError(t, err)
	assert.Equal(t, 85, report.OverallScore)
	assert.Equal(t, "Solid quiz overall.", report.OverallFeedback)
}

func TestValidateExplicitThresholdOverridesTable(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reportResponse(85, 60), nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	// A non-default threshold replaces the per-difficulty table value.
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyIntermediate, DifficultyThreshold: 50}

	report, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.NoError(t, err)
	assert.Equal(t, 85, report.OverallScore)
}

func TestValidateExpertUsesStricterThreshold(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reportResponse(90, 78), nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyExpert, DifficultyThreshold: 70}

	report, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.NoError(t, err)
	// Expert requires 80; alignment 78 clamps.
	assert.Equal(t, 78, report.OverallScore)
	assert.Contains(t, report.OverallFeedback, "expert level")
}

func TestValidateProviderFailure(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection refused")).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyIntermediate, DifficultyThreshold: 70}

	report, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, domain.HasCode(err, domain.CodeValidationUnavailable))
}

func TestValidateUnparsableResponse(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("I could not score this quiz, sorry.", nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyIntermediate, DifficultyThreshold: 70}

	_, err := v.Validate(context.Background(), sampleDraft(), params, "capable")

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeValidationUnavailable))
}

func TestValidatePromptCarriesQuizAndRubric(t *testing.T) {
	prov := NewMockProvider("capable", "gpt-4o")
	prov.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reportResponse(80, 80), nil).Once()

	v := NewQuizValidator(fixedRegistry{prov}, testPipelineConfig())
	params := domain.GenerationParameters{QuestionCount: 1, Difficulty: domain.DifficultyBeginner, DifficultyThreshold: 70}

	_, err := v.Validate(context.Background(), sampleDraft(), params, "capable")
	require.NoError(t, err)

	require.Len(t, prov.Calls, 1)
	prompt := userPromptOfCall(prov.Calls[0])
	assert.Contains(t, prompt, "What produces ATP?")
	assert.Contains(t, prompt, "beginner level")
	assert.Contains(t, prompt, "Rubric for beginner level")
}
