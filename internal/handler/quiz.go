package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz generation and validation HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a multiple-choice quiz from notes and/or a document
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.QuizDraftResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, err := h.parseGenerateRequest(c)
	if err != nil {
		return err
	}

	draft, err := h.service.Generate(c.Context(), req.ToDomain(), req.PDFURL, req.Provider)
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz generated",
		zap.Int("questions", len(draft.Questions)),
		zap.String("model", draft.AIModel))

	return c.JSON(dto.DraftResponseFromDomain(draft))
}

// GenerateValidatedQuiz godoc
// @Summary Generate and validate a quiz
// @Description Generates a quiz and scores it against the requested difficulty
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.QuizDraftResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate-quiz/validated [post]
func (h *QuizHandler) GenerateValidatedQuiz(c *fiber.Ctx) error {
	req, err := h.parseGenerateRequest(c)
	if err != nil {
		return err
	}

	draft, err := h.service.GenerateValidated(c.Context(), req.ToDomain(), req.PDFURL, req.Provider)
	if err != nil {
		return err
	}

	logger.Get().Info("Validated quiz generated",
		zap.Int("questions", len(draft.Questions)),
		zap.Bool("has_validation", draft.Validation != nil))

	return c.JSON(dto.DraftResponseFromDomain(draft))
}

// ValidateQuiz godoc
// @Summary Validate an existing quiz
// @Description Scores a quiz against a requested difficulty level
// @Tags validation
// @Accept json
// @Produce json
// @Param request body dto.ValidateQuizRequest true "Validation request"
// @Success 200 {object} dto.ValidationReportPayload
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /validate-quiz [post]
func (h *QuizHandler) ValidateQuiz(c *fiber.Ctx) error {
	var req dto.ValidateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateValidateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	domainDraft := &domain.QuizDraft{
		Title:       req.Title,
		Description: req.Description,
		Questions:   dto.QuestionsToDomain(req.Questions),
	}
	params := domain.GenerationParameters{
		QuestionCount:       len(req.Questions),
		Difficulty:          domain.Difficulty(req.Parameters.Difficulty),
		DifficultyThreshold: req.Parameters.DifficultyThreshold,
	}

	report, err := h.service.Validate(c.Context(), domainDraft, params, req.Provider)
	if err != nil {
		return err
	}

	return c.JSON(dto.ValidationReportFromDomain(report))
}

func (h *QuizHandler) parseGenerateRequest(c *fiber.Ctx) (*dto.GenerateQuizRequest, error) {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return nil, errs
	}
	return &req, nil
}
