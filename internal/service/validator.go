package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/parser"

	"go.uber.org/zap"
)

const validationSystemPrompt = `You are a quiz quality reviewer. You score multiple-choice quizzes against a requested difficulty level and respond with valid JSON only.`

const validationUserPromptTemplate = `Review the following quiz, which was generated for %s level.

%s

Quiz to review:
%s

Score each question from 0 to 100 for quality (clarity, correctness of the
marked answer, plausibility of distractors) and rate its difficulty as
"too_easy", "appropriate" or "too_hard" for %s level. Also produce:
- "overallScore": 0-100 quality score for the whole quiz.
- "difficultyAlignment": 0-100 score for how well question difficulty
  matches the requested level.
- "overallFeedback": two or three sentences of feedback.

Return JSON in exactly this format:
{
    "overallScore": 85,
    "perQuestion": [
        {
            "questionId": "1",
            "score": 90,
            "difficultyRating": "appropriate",
            "issues": [],
            "suggestions": []
        }
    ],
    "difficultyAlignment": 80,
    "overallFeedback": "..."
}`

// difficultyRubrics describes what each level should demand of the quiz
// taker; the rubric is embedded in the validation prompt.
var difficultyRubrics = map[domain.Difficulty]string{
	domain.DifficultyBeginner: `Rubric for beginner level: questions should test recall and simple
understanding of the material. Jargon-free wording; one clearly correct
answer; distractors that are wrong without being tricky.`,
	domain.DifficultyIntermediate: `Rubric for intermediate level: questions should require applying or
analyzing the material, not just recalling it. Scenarios and "which of
these follows" forms are appropriate; distractors should be plausible.`,
	domain.DifficultyExpert: `Rubric for expert level: questions should demand complex analysis,
evaluation or synthesis across concepts. Subtle distinctions between
options are expected; surface recall questions are misaligned.`,
}

// quizValidator implements domain.QuizValidator. It issues one provider call
// to score a drafted quiz and applies the deterministic alignment threshold
// policy to the parsed result.
type quizValidator struct {
	registry domain.ProviderRegistry
	cfg      config.PipelineConfig
}

// NewQuizValidator creates a new validation engine.
func NewQuizValidator(registry domain.ProviderRegistry, cfg config.PipelineConfig) domain.QuizValidator {
	return &quizValidator{registry: registry, cfg: cfg}
}

// Validate implements domain.QuizValidator. The returned report has the
// alignment policy already applied: when difficulty alignment falls below
// the threshold for the requested level, the overall score is clamped down
// to the alignment value and the feedback names both numbers. Callers must
// treat this clamped result, not the raw model score, as authoritative.
func (v *quizValidator) Validate(ctx context.Context, draft *domain.QuizDraft, params domain.GenerationParameters, providerID string) (*domain.ValidationReport, error) {
	l := logger.Get()

	prov, err := v.registry.Get(providerID)
	if err != nil {
		return nil, err
	}

	quizJSON, err := json.MarshalIndent(struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Questions   []domain.Question `json:"questions"`
	}{draft.Title, draft.Description, draft.Questions}, "", "  ")
	if err != nil {
		return nil, domain.NewInternalError("Failed to encode quiz for validation", err)
	}

	rubric := difficultyRubrics[params.Difficulty]
	userPrompt := fmt.Sprintf(validationUserPromptTemplate,
		params.Difficulty, rubric, string(quizJSON), params.Difficulty)

	raw, err := prov.Complete(ctx, validationSystemPrompt, userPrompt, domain.CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, domain.NewValidationUnavailableError(err)
	}

	report, err := parser.ParseValidationReport(raw)
	if err != nil {
		l.Error("Validation response unparsable", zap.Error(err))
		return nil, domain.NewValidationUnavailableError(err)
	}

	threshold := alignmentThreshold(params)
	rawScore := report.OverallScore
	report.ApplyAlignmentPolicy(params.Difficulty, threshold)

	l.Info("Quiz validation complete",
		zap.Int("overall_score", report.OverallScore),
		zap.Int("raw_score", rawScore),
		zap.Int("difficulty_alignment", report.DifficultyAlignment),
		zap.Int("threshold", threshold),
		zap.String("difficulty", string(params.Difficulty)))

	return report, nil
}

// alignmentThreshold resolves the clamp threshold: the per-difficulty table
// value unless the request explicitly overrides the default.
func alignmentThreshold(params domain.GenerationParameters) int {
	if params.DifficultyThreshold != domain.DefaultDifficultyThreshold {
		return params.DifficultyThreshold
	}
	return domain.AlignmentThreshold(params.Difficulty)
}
