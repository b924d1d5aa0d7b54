package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

// QuestionHandler serves /api/questions, the mini-test questions asked
// to candidates during registration. The wire field is "question" even
// though the column is question_text.
type QuestionHandler struct {
	questionRepo repositories.QuestionRepository
}

func NewQuestionHandler(questionRepo repositories.QuestionRepository) *QuestionHandler {
	return &QuestionHandler{questionRepo: questionRepo}
}

func questionPayload(q *models.MiniTestQuestion) fiber.Map {
	return fiber.Map{
		"id":       q.ID,
		"question": q.QuestionText,
	}
}

// HandleList handles GET /api/questions
func (h *QuestionHandler) HandleList(c *fiber.Ctx) error {
	questions, err := h.questionRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке вопросов",
		})
	}

	payload := make([]fiber.Map, 0, len(questions))
	for i := range questions {
		payload = append(payload, questionPayload(&questions[i]))
	}
	return c.JSON(payload)
}

// HandleCreate handles POST /api/questions
func (h *QuestionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	question := &models.MiniTestQuestion{
		ID:           uuid.New(),
		QuestionText: req.Question,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := h.questionRepo.Create(c.Context(), question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось добавить вопрос",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(questionPayload(question))
}

// HandleUpdate handles PUT /api/questions/:id
func (h *QuestionHandler) HandleUpdate(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	var req models.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	question := &models.MiniTestQuestion{
		ID:           questionID,
		QuestionText: req.Question,
	}
	if err := h.questionRepo.Update(c.Context(), question); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Вопрос не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить вопрос",
		})
	}
	return c.JSON(questionPayload(question))
}

// HandleDelete handles DELETE /api/questions/:id
func (h *QuestionHandler) HandleDelete(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	if err := h.questionRepo.Delete(c.Context(), questionID); err != nil {
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
