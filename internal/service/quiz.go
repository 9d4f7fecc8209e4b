package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// emptyContentWarning is attached to drafts generated without any source
// material; generation still proceeds.
const emptyContentWarning = "No notes or document content was provided; the quiz was generated without source material."

// QuizService is the pipeline facade: the only entry point the HTTP layer
// consumes. It composes content preparation, generation orchestration and
// best-effort validation.
type QuizService interface {
	// Generate runs the generation pipeline for the request. When
	// documentSource is non-empty the document-to-text collaborator is
	// consulted first.
	Generate(ctx context.Context, req *domain.GenerationRequest, documentSource, providerID string) (*domain.QuizDraft, error)

	// GenerateValidated runs Generate and then scores the draft. Validation
	// is advisory: a failed validation call or a sub-threshold score
	// annotates the draft, it never fails an otherwise-successful
	// generation.
	GenerateValidated(ctx context.Context, req *domain.GenerationRequest, documentSource, providerID string) (*domain.QuizDraft, error)

	// Validate scores an existing draft against the requested difficulty.
	Validate(ctx context.Context, draft *domain.QuizDraft, params domain.GenerationParameters, providerID string) (*domain.ValidationReport, error)
}

type quizService struct {
	registry  domain.ProviderRegistry
	extractor domain.TextExtractor
	preparer  *ContentPreparer
	generator domain.QuizGenerator
	validator domain.QuizValidator
	cache     domain.Cache
	cfg       config.PipelineConfig
	sfGroup   singleflight.Group
}

// NewQuizService creates the pipeline facade. The cache may be nil, in which
// case draft caching is skipped.
func NewQuizService(
	registry domain.ProviderRegistry,
	extractor domain.TextExtractor,
	preparer *ContentPreparer,
	generator domain.QuizGenerator,
	validator domain.QuizValidator,
	cacheAdapter domain.Cache,
	cfg config.PipelineConfig,
) QuizService {
	return &quizService{
		registry:  registry,
		extractor: extractor,
		preparer:  preparer,
		generator: generator,
		validator: validator,
		cache:     cacheAdapter,
		cfg:       cfg,
	}
}

// Generate implements QuizService.
func (s *quizService) Generate(ctx context.Context, req *domain.GenerationRequest, documentSource, providerID string) (*domain.QuizDraft, error) {
	req.Parameters.ApplyDefaults()
	if errs := req.Parameters.Validate(); len(errs) > 0 {
		return nil, errs
	}

	content, err := s.prepareContent(ctx, req, documentSource, providerID)
	if err != nil {
		return nil, err
	}

	draft, err := s.generateFromContent(ctx, content, req.Parameters, providerID)
	if err != nil {
		return nil, err
	}

	if content == "" {
		draft = withWarning(draft, emptyContentWarning)
	}
	return draft, nil
}

// GenerateValidated implements QuizService.
func (s *quizService) GenerateValidated(ctx context.Context, req *domain.GenerationRequest, documentSource, providerID string) (*domain.QuizDraft, error) {
	draft, err := s.Generate(ctx, req, documentSource, providerID)
	if err != nil {
		return nil, err
	}

	report, err := s.Validate(ctx, draft, req.Parameters, providerID)
	if err != nil {
		// Validation is best-effort: surface the outage on the draft and
		// return the generation result anyway.
		logger.Get().Warn("Validation unavailable, returning unvalidated draft", zap.Error(err))
		return withWarning(draft, "Quiz quality validation was unavailable for this quiz."), nil
	}

	validated := *draft
	validated.Validation = report
	if report.OverallScore < req.Parameters.DifficultyThreshold {
		validated.Warning = joinWarnings(validated.Warning, fmt.Sprintf(
			"Quiz quality score %d is below the requested threshold of %d.",
			report.OverallScore, req.Parameters.DifficultyThreshold))
	}
	return &validated, nil
}

// Validate implements QuizService.
func (s *quizService) Validate(ctx context.Context, draft *domain.QuizDraft, params domain.GenerationParameters, providerID string) (*domain.ValidationReport, error) {
	params.ApplyDefaults()
	return s.validator.Validate(ctx, draft, params, providerID)
}

func (s *quizService) prepareContent(ctx context.Context, req *domain.GenerationRequest, documentSource, providerID string) (string, error) {
	if documentSource != "" {
		doc, err := s.extractor.ExtractText(ctx, documentSource)
		if err != nil {
			return "", err
		}
		return s.preparer.PrepareDocument(ctx, req.NotesText, doc, providerID)
	}
	return s.preparer.Prepare(ctx, req.NotesText, req.DocumentText, providerID)
}

// generateFromContent runs the orchestrator behind the draft cache and a
// singleflight group, so identical concurrent requests share one provider
// round-trip.
func (s *quizService) generateFromContent(ctx context.Context, content string, params domain.GenerationParameters, providerID string) (*domain.QuizDraft, error) {
	l := logger.Get()
	key := draftCacheKey(content, params, providerID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var draft domain.QuizDraft
			if err := json.Unmarshal([]byte(cached), &draft); err == nil {
				l.Info("Draft cache hit", zap.String("key", key))
				return &draft, nil
			}
			// An undecodable entry is dropped, not served.
			_ = s.cache.Delete(ctx, key)
		} else if err != domain.ErrCacheMiss {
			l.Warn("Draft cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		chunks := s.preparer.Chunk(content)
		draft, outcomes, err := s.generator.Generate(ctx, content, chunks, params, providerID)
		if err != nil {
			return nil, err
		}
		logBatchOutcomes(l, outcomes)

		if s.cache != nil && draft.Warning == "" {
			if encoded, err := json.Marshal(draft); err == nil {
				if err := s.cache.Set(ctx, key, string(encoded), s.cfg.DraftCacheTTL); err != nil {
					l.Warn("Draft cache write failed", zap.Error(err))
				}
			}
		}
		return draft, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.QuizDraft), nil
}

func draftCacheKey(content string, params domain.GenerationParameters, providerID string) string {
	digest := cache.HashContent(content, string(params.Difficulty), providerID)
	return cache.GenerateCacheKey("quiz", "draft", digest,
		strconv.Itoa(params.QuestionCount))
}

func logBatchOutcomes(l *zap.Logger, outcomes []domain.BatchOutcome) {
	for _, o := range outcomes {
		if o.Err != nil {
			l.Warn("Generation batch outcome",
				zap.Int("batch", o.Index),
				zap.Int("requested", o.Requested),
				zap.Error(o.Err))
		}
	}
}

// withWarning returns a copy of the draft carrying the extra warning;
// drafts handed to callers are treated as immutable.
func withWarning(draft *domain.QuizDraft, warning string) *domain.QuizDraft {
	annotated := *draft
	annotated.Warning = joinWarnings(annotated.Warning, warning)
	return &annotated
}

func joinWarnings(existing, added string) string {
	if existing == "" {
		return added
	}
	if added == "" {
		return existing
	}
	return existing + " " + added
}
