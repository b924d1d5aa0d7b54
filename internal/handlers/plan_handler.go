package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/middleware"
	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

// PlanHandler serves the link-based adaptation plans. The same handler
// backs both the line variant (/adaptation-plan) and the admin variant
// (/adaptation-plan/admin); the variant is fixed per route.
type PlanHandler struct {
	planRepo repositories.PlanRepository
	userRepo repositories.UserRepository
	variant  models.PlanVariant
}

func NewPlanHandler(
	planRepo repositories.PlanRepository,
	userRepo repositories.UserRepository,
	variant models.PlanVariant,
) *PlanHandler {
	return &PlanHandler{
		planRepo: planRepo,
		userRepo: userRepo,
		variant:  variant,
	}
}

// HandleList handles GET. Admins see every plan of the variant; other
// roles only the plans where they are the mentor.
func (h *PlanHandler) HandleList(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var (
		plans []models.AdaptationPlan
		err   error
	)
	if claims.Capabilities.CanEditPlans {
		plans, err = h.planRepo.FindByVariant(c.Context(), h.variant)
	} else {
		plans, err = h.planRepo.FindByVariantAndMentor(c.Context(), h.variant, claims.UserID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке планов",
		})
	}

	responses := make([]models.AdaptationPlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, models.AdaptationPlanResponse{
			ID:       plan.ID,
			MentorID: plan.MentorID,
			Username: plan.Mentor.Username,
			Link:     plan.Link,
		})
	}
	return c.JSON(responses)
}

// HandleCreate handles POST
func (h *PlanHandler) HandleCreate(c *fiber.Ctx) error {
	req, mentor, ok := h.parsePlanRequest(c)
	if !ok {
		return nil
	}

	plan := &models.AdaptationPlan{
		ID:        uuid.New(),
		MentorID:  mentor.ID,
		Link:      req.Link,
		Variant:   h.variant,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.planRepo.Create(c.Context(), plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось добавить план",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.AdaptationPlanResponse{
		ID:       plan.ID,
		MentorID: plan.MentorID,
		Username: mentor.Username,
		Link:     plan.Link,
	})
}

// HandleUpdate handles PUT /:id
func (h *PlanHandler) HandleUpdate(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора плана",
		})
	}

	req, mentor, ok := h.parsePlanRequest(c)
	if !ok {
		return nil
	}

	plan := &models.AdaptationPlan{
		ID:       planID,
		MentorID: mentor.ID,
		Link:     req.Link,
		Variant:  h.variant,
	}
	if err := h.planRepo.Update(c.Context(), plan); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "План не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить план",
		})
	}

	return c.JSON(models.AdaptationPlanResponse{
		ID:       plan.ID,
		MentorID: plan.MentorID,
		Username: mentor.Username,
		Link:     plan.Link,
	})
}

// HandleDelete handles DELETE /:id
func (h *PlanHandler) HandleDelete(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора плана",
		})
	}

	if err := h.planRepo.Delete(c.Context(), planID, h.variant); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "План не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка удаления",
		})
	}

	return c.JSON(fiber.Map{"message": "План удалён"})
}

func (h *PlanHandler) parsePlanRequest(c *fiber.Ctx) (*models.AdaptationPlanRequest, *models.User, bool) {
	var req models.AdaptationPlanRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
		return nil, nil, false
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return nil, nil, false
	}

	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора наставника",
		})
		return nil, nil, false
	}

	mentor, err := h.userRepo.FindByID(c.Context(), mentorID)
	if err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Наставник не найден",
		})
		return nil, nil, false
	}
	return &req, mentor, true
}
