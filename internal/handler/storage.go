package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// StorageHandler handles stored-quiz CRUD HTTP requests
type StorageHandler struct {
	store     service.QuizStoreService
	validator *validation.Validator
}

// NewStorageHandler creates a new StorageHandler instance
func NewStorageHandler(store service.QuizStoreService, validator *validation.Validator) *StorageHandler {
	return &StorageHandler{
		store:     store,
		validator: validator,
	}
}

// CreateQuiz godoc
// @Summary Store a quiz
// @Description Persists a quiz for a user
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz to store"
// @Success 201 {object} dto.CreateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quiz [post]
func (h *StorageHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateCreateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	draft := &domain.QuizDraft{
		Title:       req.Title,
		Description: req.Description,
		Questions:   dto.QuestionsToDomain(req.Questions),
		AIModel:     req.AIModel,
	}

	quiz, err := h.store.CreateQuiz(c.Context(), req.UserID, draft)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateQuizResponse{
		Message: "Quiz created successfully",
		QuizID:  quiz.ID,
	})
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a stored quiz by ID
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *StorageHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.store.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizResponseFromDomain(quiz))
}

// GetQuizzes godoc
// @Summary List quizzes
// @Description Returns all quizzes owned by a user
// @Tags quizzes
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {array} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quizzes [get]
func (h *StorageHandler) GetQuizzes(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("userId")}
	}

	quizzes, err := h.store.GetQuizzesByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, dto.QuizResponseFromDomain(quiz))
	}
	return c.JSON(responses)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Replaces the content of a stored quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.CreateQuizRequest true "New quiz content"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [put]
func (h *StorageHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	draft := &domain.QuizDraft{
		Title:       req.Title,
		Description: req.Description,
		Questions:   dto.QuestionsToDomain(req.Questions),
		AIModel:     req.AIModel,
	}

	quiz, err := h.store.UpdateQuiz(c.Context(), c.Params("id"), draft)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizResponseFromDomain(quiz))
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Soft-deletes a stored quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.CreateQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [delete]
func (h *StorageHandler) DeleteQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.DeleteQuiz(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(dto.CreateQuizResponse{
		Message: "Quiz deleted successfully",
		QuizID:  id,
	})
}
