package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `
	id "id",
	user_id "user_id",
	title "title",
	description "description",
	questions "questions",
	ai_model "ai_model",
	created_at "created_at",
	updated_at "updated_at",
	deleted_at "deleted_at"`

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	model := toModelQuiz(quiz)
	query := `INSERT INTO quizzes (
		id, user_id, title, description, questions, ai_model, created_at, updated_at
	) VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	questions, err := model.Questions.Value()
	if err != nil {
		return fmt.Errorf("failed to encode questions for quiz %s: %w", quiz.ID, err)
	}

	_, err = a.db.ExecContext(ctx, query,
		model.ID,
		model.UserID,
		model.Title,
		model.Description,
		questions,
		model.AIModel,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE id = :1
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&model), nil
}

// GetQuizzesByUser implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	var modelQuizzes []models.Quiz
	query := `SELECT ` + quizColumns + `
	FROM quizzes
	WHERE user_id = :1
	AND deleted_at IS NULL
	ORDER BY created_at DESC`

	if err := a.db.SelectContext(ctx, &modelQuizzes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for user %s: %w", userID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		quizzes = append(quizzes, toDomainQuiz(&modelQuizzes[i]))
	}
	return quizzes, nil
}

// UpdateQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	model := toModelQuiz(quiz)
	query := `UPDATE quizzes SET
		title = :1,
		description = :2,
		questions = :3,
		ai_model = :4,
		updated_at = :5
	WHERE id = :6
	AND deleted_at IS NULL`

	questions, err := model.Questions.Value()
	if err != nil {
		return fmt.Errorf("failed to encode questions for quiz %s: %w", quiz.ID, err)
	}

	_, err = a.db.ExecContext(ctx, query,
		model.Title,
		model.Description,
		questions,
		model.AIModel,
		model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// DeleteQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET deleted_at = :1 WHERE id = :2 AND deleted_at IS NULL`
	if _, err := a.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return nil
}

func toModelQuiz(quiz *domain.Quiz) *models.Quiz {
	questions := make(models.QuestionList, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, models.Question{
			ID:            q.ID,
			Question:      q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			ImageURL:      q.ImageURL,
		})
	}
	return &models.Quiz{
		ID:          quiz.ID,
		UserID:      quiz.UserID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
		AIModel:     quiz.AIModel,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

func toDomainQuiz(model *models.Quiz) *domain.Quiz {
	questions := make([]domain.Question, 0, len(model.Questions))
	for _, q := range model.Questions {
		questions = append(questions, domain.Question{
			ID:            q.ID,
			QuestionText:  q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			ImageURL:      q.ImageURL,
		})
	}
	return &domain.Quiz{
		ID:          model.ID,
		UserID:      model.UserID,
		Title:       model.Title,
		Description: model.Description,
		Questions:   questions,
		AIModel:     model.AIModel,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
