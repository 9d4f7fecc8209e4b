package service

import (
	"context"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

// QuizStoreService owns quiz persistence. The generation pipeline never
// persists anything itself; callers store accepted drafts here.
type QuizStoreService interface {
	CreateQuiz(ctx context.Context, userID string, draft *domain.QuizDraft) (*domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)
	GetQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, draft *domain.QuizDraft) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

type quizStoreService struct {
	repo domain.QuizRepository
}

// NewQuizStoreService creates a new QuizStoreService.
func NewQuizStoreService(repo domain.QuizRepository) QuizStoreService {
	return &quizStoreService{repo: repo}
}

// CreateQuiz implements QuizStoreService.
func (s *quizStoreService) CreateQuiz(ctx context.Context, userID string, draft *domain.QuizDraft) (*domain.Quiz, error) {
	if err := draft.Validate(); err != nil {
		return nil, domain.NewError(domain.CodeInvalidInput, "Invalid quiz", err)
	}

	quiz := domain.NewQuiz(util.NewULID(), userID, draft)
	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	logger.Get().Info("Quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("user_id", userID),
		zap.Int("questions", len(quiz.Questions)))

	return quiz, nil
}

// GetQuiz implements QuizStoreService.
func (s *quizStoreService) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return quiz, nil
}

// GetQuizzesByUser implements QuizStoreService.
func (s *quizStoreService) GetQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	quizzes, err := s.repo.GetQuizzesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return quizzes, nil
}

// UpdateQuiz implements QuizStoreService.
func (s *quizStoreService) UpdateQuiz(ctx context.Context, id string, draft *domain.QuizDraft) (*domain.Quiz, error) {
	if err := draft.Validate(); err != nil {
		return nil, domain.NewError(domain.CodeInvalidInput, "Invalid quiz", err)
	}

	existing, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if existing == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}

	existing.Title = draft.Title
	existing.Description = draft.Description
	existing.Questions = draft.Questions
	existing.UpdatedAt = time.Now()
	if err := s.repo.UpdateQuiz(ctx, existing); err != nil {
		return nil, domain.NewInternalError("Failed to update quiz", err)
	}
	return existing, nil
}

// DeleteQuiz implements QuizStoreService.
func (s *quizStoreService) DeleteQuiz(ctx context.Context, id string) error {
	existing, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to get quiz", err)
	}
	if existing == nil {
		return domain.NewQuizNotFoundError(id)
	}
	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	return nil
}
