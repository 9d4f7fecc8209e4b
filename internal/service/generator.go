package service

import (
	"context"
	"fmt"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/parser"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

const generationSystemPrompt = `You are a quiz generator. You create multiple-choice quizzes from provided study material and respond with valid JSON only, never with code or prose.`

const generationUserPromptTemplate = `Generate a multiple-choice quiz based on the following content:
%s

Requirements:
- Exactly %d questions.
- Difficulty level: %s.
- Each question has 4 answer options and exactly one correct answer.
- The correctAnswer value must be copied verbatim from the options.
- Include a brief explanation for each correct answer.

Return the quiz in exactly this JSON format:
{
    "title": "Quiz Title",
    "description": "Quiz Description",
    "questions": [
        {
            "id": "1",
            "question": "Question text",
            "options": ["option1", "option2", "option3", "option4"],
            "correctAnswer": "correct option",
            "explanation": "Why this answer is correct"
        }
    ]
}`

// quizGenerator implements domain.QuizGenerator. Requests at or below the
// batch threshold are served by a single provider call; larger requests are
// split into fixed-size batches that rotate through the content chunks.
type quizGenerator struct {
	registry domain.ProviderRegistry
	cfg      config.PipelineConfig
}

// NewQuizGenerator creates a new generation orchestrator.
func NewQuizGenerator(registry domain.ProviderRegistry, cfg config.PipelineConfig) domain.QuizGenerator {
	return &quizGenerator{registry: registry, cfg: cfg}
}

// Generate implements domain.QuizGenerator.
func (g *quizGenerator) Generate(ctx context.Context, content string, chunks []domain.ContentChunk, params domain.GenerationParameters, providerID string) (*domain.QuizDraft, []domain.BatchOutcome, error) {
	prov, err := g.registry.Get(providerID)
	if err != nil {
		return nil, nil, err
	}

	if params.QuestionCount <= g.cfg.BatchThreshold {
		draft, err := g.generateSingle(ctx, prov, content, params)
		outcome := domain.BatchOutcome{Index: 0, Requested: params.QuestionCount, Err: err}
		if err != nil {
			return nil, []domain.BatchOutcome{outcome}, err
		}
		outcome.Produced = len(draft.Questions)
		return draft, []domain.BatchOutcome{outcome}, nil
	}

	return g.generateBatched(ctx, prov, content, chunks, params)
}

func (g *quizGenerator) generateSingle(ctx context.Context, prov domain.Provider, content string, params domain.GenerationParameters) (*domain.QuizDraft, error) {
	draft, err := g.requestQuestions(ctx, prov, content, params.QuestionCount, params.Difficulty)
	if err != nil {
		return nil, err
	}

	if len(draft.Questions) > params.QuestionCount {
		draft.Questions = draft.Questions[:params.QuestionCount]
	}
	assignQuestionIDs(draft.Questions)
	draft.AIModel = prov.Model()
	return draft, nil
}

// generateBatched drives multi-call generation. Batches run sequentially;
// each batch reads the content chunk at batchIndex mod numChunks so even a
// few chunks give later batches varied context. The first successful batch
// seeds the draft title and description; later batches contribute questions
// only. A failed or unparsable batch is skipped without retry.
func (g *quizGenerator) generateBatched(ctx context.Context, prov domain.Provider, content string, chunks []domain.ContentChunk, params domain.GenerationParameters) (*domain.QuizDraft, []domain.BatchOutcome, error) {
	l := logger.Get()

	batchSize := g.cfg.BatchSize
	batchesNeeded := (params.QuestionCount + batchSize - 1) / batchSize

	l.Info("Starting batched generation",
		zap.Int("question_count", params.QuestionCount),
		zap.Int("batches", batchesNeeded),
		zap.Int("chunks", len(chunks)),
		zap.String("provider", prov.ID()))

	draft := &domain.QuizDraft{AIModel: prov.Model()}
	outcomes := make([]domain.BatchOutcome, 0, batchesNeeded)
	remaining := params.QuestionCount
	seeded := false

	for batch := 0; batch < batchesNeeded; batch++ {
		batchContent := content
		if len(chunks) > 0 {
			batchContent = chunks[batch%len(chunks)].Text
		}

		requested := batchSize
		if remaining < batchSize {
			requested = remaining
		}

		batchDraft, err := g.requestQuestions(ctx, prov, batchContent, requested, params.Difficulty)
		outcome := domain.BatchOutcome{Index: batch, Requested: requested, Err: err}
		if err != nil {
			l.Warn("Generation batch failed, skipping",
				zap.Int("batch", batch),
				zap.Error(err))
			outcomes = append(outcomes, outcome)
			continue
		}

		if !seeded {
			draft.Title = batchDraft.Title
			draft.Description = batchDraft.Description
			seeded = true
		}

		produced := batchDraft.Questions
		if len(produced) > requested {
			produced = produced[:requested]
		}
		draft.Questions = append(draft.Questions, produced...)
		outcome.Produced = len(produced)
		outcomes = append(outcomes, outcome)
		remaining -= len(produced)
		if remaining < 0 {
			remaining = 0
		}
	}

	if len(draft.Questions) == 0 {
		return nil, outcomes, domain.NewAllBatchesFailedError(batchesNeeded)
	}

	// Never exceed the requested count, even if a batch over-delivered.
	if len(draft.Questions) > params.QuestionCount {
		draft.Questions = draft.Questions[:params.QuestionCount]
	}
	assignQuestionIDs(draft.Questions)

	if len(draft.Questions) < params.QuestionCount {
		draft.Warning = fmt.Sprintf(
			"Generated %d of %d requested questions; some generation batches failed.",
			len(draft.Questions), params.QuestionCount)
	}

	l.Info("Batched generation complete",
		zap.Int("produced", len(draft.Questions)),
		zap.Int("requested", params.QuestionCount))

	return draft, outcomes, nil
}

func (g *quizGenerator) requestQuestions(ctx context.Context, prov domain.Provider, content string, count int, difficulty domain.Difficulty) (*domain.QuizDraft, error) {
	userPrompt := fmt.Sprintf(generationUserPromptTemplate, content, count, difficulty)

	raw, err := prov.Complete(ctx, generationSystemPrompt, userPrompt, domain.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return nil, err
	}

	return parser.ParseQuizDraft(raw)
}

// assignQuestionIDs guarantees every question carries an ID unique within
// the quiz. Model-provided IDs are kept unless missing or colliding, which
// happens routinely when batches each number their questions from 1.
func assignQuestionIDs(questions []domain.Question) {
	seen := make(map[string]bool, len(questions))
	for i := range questions {
		id := questions[i].ID
		if id == "" || seen[id] {
			id = util.NewULID()
			questions[i].ID = id
		}
		seen[id] = true
	}
}
