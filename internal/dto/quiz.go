package dto

import (
	"time"

	"quiz-forge/internal/domain"
)

// GenerationParameters mirrors domain.GenerationParameters at the API
// boundary.
type GenerationParameters struct {
	QuestionCount       int                    `json:"questionCount"`
	Difficulty          string                 `json:"difficulty,omitempty"`
	DifficultyThreshold int                    `json:"difficultyThreshold,omitempty"`
	Extra               map[string]interface{} `json:"extra,omitempty"`
}

// GenerateQuizRequest is the request body for quiz generation. Content may
// come from free-text notes, pre-extracted document text, a document URL or
// a local document path.
type GenerateQuizRequest struct {
	Notes        string               `json:"notes,omitempty"`
	DocumentText string               `json:"documentText,omitempty"`
	PDFURL       string               `json:"pdfUrl,omitempty"`
	Provider     string               `json:"provider,omitempty"`
	Parameters   GenerationParameters `json:"parameters"`
}

// ToDomain converts the request into a domain GenerationRequest.
func (r *GenerateQuizRequest) ToDomain() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		NotesText:    r.Notes,
		DocumentText: r.DocumentText,
		Parameters: domain.GenerationParameters{
			QuestionCount:       r.Parameters.QuestionCount,
			Difficulty:          domain.Difficulty(r.Parameters.Difficulty),
			DifficultyThreshold: r.Parameters.DifficultyThreshold,
			Extra:               r.Parameters.Extra,
		},
	}
}

// QuestionPayload is the wire shape of a single question.
type QuestionPayload struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

// QuestionEvaluationPayload is the wire shape of one per-question
// validation entry.
type QuestionEvaluationPayload struct {
	QuestionID       string   `json:"questionId"`
	Score            int      `json:"score"`
	DifficultyRating string   `json:"difficultyRating"`
	Issues           []string `json:"issues,omitempty"`
	Suggestions      []string `json:"suggestions,omitempty"`
}

// ValidationReportPayload is the wire shape of a validation report.
type ValidationReportPayload struct {
	OverallScore        int                         `json:"overallScore"`
	PerQuestion         []QuestionEvaluationPayload `json:"perQuestion"`
	DifficultyAlignment int                         `json:"difficultyAlignment"`
	OverallFeedback     string                      `json:"overallFeedback"`
}

// QuizDraftResponse is the response body for generated quizzes.
type QuizDraftResponse struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Questions   []QuestionPayload        `json:"questions"`
	AIModel     string                   `json:"aiModel"`
	Warning     string                   `json:"warning,omitempty"`
	Validation  *ValidationReportPayload `json:"validation,omitempty"`
}

// ValidateQuizRequest is the request body for validating an existing quiz.
type ValidateQuizRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Questions   []QuestionPayload    `json:"questions"`
	Provider    string               `json:"provider,omitempty"`
	Parameters  GenerationParameters `json:"parameters"`
}

// CreateQuizRequest is the request body for storing a quiz.
type CreateQuizRequest struct {
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Questions   []QuestionPayload `json:"questions"`
	AIModel     string            `json:"aiModel,omitempty"`
}

// CreateQuizResponse is returned after a quiz is stored.
type CreateQuizResponse struct {
	Message string `json:"message"`
	QuizID  string `json:"quizid"`
}

// QuizResponse is the wire shape of a stored quiz.
type QuizResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []QuestionPayload `json:"questions"`
	AIModel     string            `json:"aiModel,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// QuestionsToDomain converts wire questions into domain questions.
func QuestionsToDomain(payloads []QuestionPayload) []domain.Question {
	questions := make([]domain.Question, 0, len(payloads))
	for _, p := range payloads {
		questions = append(questions, domain.Question{
			ID:            p.ID,
			QuestionText:  p.Question,
			Options:       p.Options,
			CorrectAnswer: p.CorrectAnswer,
			Explanation:   p.Explanation,
			ImageURL:      p.ImageURL,
		})
	}
	return questions
}

func questionsFromDomain(questions []domain.Question) []QuestionPayload {
	payloads := make([]QuestionPayload, 0, len(questions))
	for _, q := range questions {
		payloads = append(payloads, QuestionPayload{
			ID:            q.ID,
			Question:      q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			ImageURL:      q.ImageURL,
		})
	}
	return payloads
}

// ValidationReportFromDomain converts a domain report to its wire shape.
func ValidationReportFromDomain(report *domain.ValidationReport) *ValidationReportPayload {
	if report == nil {
		return nil
	}
	perQuestion := make([]QuestionEvaluationPayload, 0, len(report.PerQuestion))
	for _, e := range report.PerQuestion {
		perQuestion = append(perQuestion, QuestionEvaluationPayload{
			QuestionID:       e.QuestionID,
			Score:            e.Score,
			DifficultyRating: string(e.DifficultyRating),
			Issues:           e.Issues,
			Suggestions:      e.Suggestions,
		})
	}
	return &ValidationReportPayload{
		OverallScore:        report.OverallScore,
		PerQuestion:         perQuestion,
		DifficultyAlignment: report.DifficultyAlignment,
		OverallFeedback:     report.OverallFeedback,
	}
}

// DraftResponseFromDomain converts a domain draft to its wire shape.
func DraftResponseFromDomain(draft *domain.QuizDraft) *QuizDraftResponse {
	return &QuizDraftResponse{
		Title:       draft.Title,
		Description: draft.Description,
		Questions:   questionsFromDomain(draft.Questions),
		AIModel:     draft.AIModel,
		Warning:     draft.Warning,
		Validation:  ValidationReportFromDomain(draft.Validation),
	}
}

// QuizResponseFromDomain converts a stored quiz to its wire shape.
func QuizResponseFromDomain(quiz *domain.Quiz) *QuizResponse {
	return &QuizResponse{
		ID:          quiz.ID,
		UserID:      quiz.UserID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questionsFromDomain(quiz.Questions),
		AIModel:     quiz.AIModel,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}
