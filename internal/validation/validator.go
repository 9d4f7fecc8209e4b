package validation

import (
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

// maxQuestionCount bounds how many questions one request may ask for.
const maxQuestionCount = 200

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates a generation request. Empty content
// is allowed (generation then runs on the warning path), but the parameters
// must be in range and the document URL, when present, must look like one.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.validateParameters(req.Parameters)...)

	if req.PDFURL != "" {
		url := strings.TrimSpace(req.PDFURL)
		if !strings.HasPrefix(url, "http://") &&
			!strings.HasPrefix(url, "https://") &&
			!strings.HasPrefix(url, "file://") &&
			!strings.HasPrefix(url, "/") {
			errors = append(errors, domain.NewInvalidValueError("pdfUrl", req.PDFURL))
		}
	}

	return errors
}

// ValidateValidateQuizRequest validates a validation request.
func (v *Validator) ValidateValidateQuizRequest(req *dto.ValidateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	}
	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}
	errors = append(errors, v.validateParameters(req.Parameters)...)

	return errors
}

// ValidateCreateQuizRequest validates a quiz store request.
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.UserID) == "" {
		errors = append(errors, domain.NewMissingFieldError("userId"))
	}
	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	}
	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}

	return errors
}

func (v *Validator) validateParameters(params dto.GenerationParameters) domain.ValidationErrors {
	var errors domain.ValidationErrors

	// Zero means "use the default"; only explicit out-of-range values fail.
	if params.QuestionCount < 0 || params.QuestionCount > maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("questionCount", params.QuestionCount, 1, maxQuestionCount))
	}
	if params.Difficulty != "" && !domain.Difficulty(params.Difficulty).IsValid() {
		errors = append(errors, domain.NewInvalidValueError("difficulty", params.Difficulty))
	}
	if params.DifficultyThreshold < 0 || params.DifficultyThreshold > 100 {
		errors = append(errors, domain.NewOutOfRangeError("difficultyThreshold", params.DifficultyThreshold, 0, 100))
	}

	return errors
}
