package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

type FAQHandler struct {
	faqRepo repositories.FAQRepository
}

func NewFAQHandler(faqRepo repositories.FAQRepository) *FAQHandler {
	return &FAQHandler{faqRepo: faqRepo}
}

// HandleList handles GET /api/faqs
func (h *FAQHandler) HandleList(c *fiber.Ctx) error {
	faqs, err := h.faqRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке вопросов",
		})
	}
	return c.JSON(faqs)
}

// HandleCreate handles POST /api/faqs
func (h *FAQHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	faq := &models.FAQ{
		ID:        uuid.New(),
		Question:  req.Question,
		Answer:    req.Answer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.faqRepo.Create(c.Context(), faq); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось добавить вопрос",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

// HandleUpdate handles PUT /api/faqs/:id
func (h *FAQHandler) HandleUpdate(c *fiber.Ctx) error {
	faqID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	var req models.FAQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	faq := &models.FAQ{
		ID:       faqID,
		Question: req.Question,
		Answer:   req.Answer,
	}
	if err := h.faqRepo.Update(c.Context(), faq); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Вопрос не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить вопрос",
		})
	}
	return c.JSON(faq)
}

// HandleDelete handles DELETE /api/faqs/:id
func (h *FAQHandler) HandleDelete(c *fiber.Ctx) error {
	faqID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора вопроса",
		})
	}

	if err := h.faqRepo.Delete(c.Context(), faqID); err != nil {
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
