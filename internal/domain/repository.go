package domain

import "context"

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID; nil without error when absent
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// GetQuizzesByUser returns all quizzes owned by a user, newest first
	GetQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)

	// UpdateQuiz updates an existing quiz
	UpdateQuiz(ctx context.Context, quiz *Quiz) error

	// DeleteQuiz soft-deletes a quiz by its ID
	DeleteQuiz(ctx context.Context, id string) error
}
