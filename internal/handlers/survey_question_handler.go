package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

// SurveyQuestionHandler serves /surveyQuestions, the questions sent out
// with adaptation surveys.
type SurveyQuestionHandler struct {
	surveyQuestionRepo repositories.SurveyQuestionRepository
}

func NewSurveyQuestionHandler(surveyQuestionRepo repositories.SurveyQuestionRepository) *SurveyQuestionHandler {
	return &SurveyQuestionHandler{surveyQuestionRepo: surveyQuestionRepo}
}

// HandleList handles GET /surveyQuestions
func (h *SurveyQuestionHandler) HandleList(c *fiber.Ctx) error {
	questions, err := h.surveyQuestionRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке вопросов",
		})
	}
	return c.JSON(questions)
}

// HandleCreate handles POST /surveyQuestions
func (h *SurveyQuestionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.SurveyQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	question := &models.SurveyQuestion{
		ID:           uuid.New(),
		QuestionText: req.QuestionText,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := h.surveyQuestionRepo.Create(c.Context(), question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось добавить вопрос",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// HandleUpdate handles PUT /surveyQuestions/:id
func (h *SurveyQuestionHandler) HandleUpdate(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	var req models.SurveyQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	question := &models.SurveyQuestion{
		ID:           questionID,
		QuestionText: req.QuestionText,
	}
	if err := h.surveyQuestionRepo.Update(c.Context(), question); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Вопрос не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить вопрос",
		})
	}
	return c.JSON(question)
}

// HandleDelete handles DELETE /surveyQuestions/:id
func (h *SurveyQuestionHandler) HandleDelete(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	if err := h.surveyQuestionRepo.Delete(c.Context(), questionID); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Вопрос не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка удаления",
		})
	}
	return c.JSON(fiber.Map{"message": "Вопрос удалён"})
}
