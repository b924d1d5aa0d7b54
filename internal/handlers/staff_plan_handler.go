package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/middleware"
	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

// StaffPlanHandler serves /api/staff-adaptation-plans: the op variant
// pairing a mentor with a trainee for a date range.
type StaffPlanHandler struct {
	staffPlanRepo repositories.StaffPlanRepository
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateRepository
}

func NewStaffPlanHandler(
	staffPlanRepo repositories.StaffPlanRepository,
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateRepository,
) *StaffPlanHandler {
	return &StaffPlanHandler{
		staffPlanRepo: staffPlanRepo,
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
	}
}

// HandleList handles GET /api/staff-adaptation-plans
func (h *StaffPlanHandler) HandleList(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	var (
		plans []models.StaffAdaptationPlan
		err   error
	)
	if claims.Capabilities.CanManageStaffPlans {
		plans, err = h.staffPlanRepo.FindAll(c.Context())
	} else {
		plans, err = h.staffPlanRepo.FindByMentor(c.Context(), claims.UserID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке планов",
		})
	}

	responses := make([]models.StaffPlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, newStaffPlanResponse(&plans[i]))
	}
	return c.JSON(responses)
}

// HandleCreate handles POST /api/staff-adaptation-plans
func (h *StaffPlanHandler) HandleCreate(c *fiber.Ctx) error {
	parsed, ok := h.parseStaffPlanRequest(c)
	if !ok {
		return nil
	}

	plan := &models.StaffAdaptationPlan{
		ID:        uuid.New(),
		MentorID:  parsed.mentor.ID,
		TraineeID: parsed.trainee.ID,
		StartDate: parsed.startDate,
		EndDate:   parsed.endDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.staffPlanRepo.Create(c.Context(), plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось добавить план",
		})
	}

	plan.Mentor = *parsed.mentor
	plan.Trainee = *parsed.trainee
	return c.Status(fiber.StatusCreated).JSON(newStaffPlanResponse(plan))
}

// HandleUpdate handles PUT /api/staff-adaptation-plans/:id
func (h *StaffPlanHandler) HandleUpdate(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора плана",
		})
	}

	parsed, ok := h.parseStaffPlanRequest(c)
	if !ok {
		return nil
	}

	plan := &models.StaffAdaptationPlan{
		ID:        planID,
		MentorID:  parsed.mentor.ID,
		TraineeID: parsed.trainee.ID,
		StartDate: parsed.startDate,
		EndDate:   parsed.endDate,
	}
	if err := h.staffPlanRepo.Update(c.Context(), plan); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "План не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить план",
		})
	}

	plan.Mentor = *parsed.mentor
	plan.Trainee = *parsed.trainee
	return c.JSON(newStaffPlanResponse(plan))
}

// HandleDelete handles DELETE /api/staff-adaptation-plans/:id
func (h *StaffPlanHandler) HandleDelete(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора плана",
		})
	}

	if err := h.staffPlanRepo.Delete(c.Context(), planID); err != nil {
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

type parsedStaffPlan struct {
	mentor    *models.User
	trainee   *models.Candidate
	startDate time.Time
	endDate   time.Time
}

func (h *StaffPlanHandler) parseStaffPlanRequest(c *fiber.Ctx) (*parsedStaffPlan, bool) {
	var req models.StaffPlanRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return nil, false
	}

	startDate, err := time.Parse(models.DateOnly, req.StartDate)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат даты начала, ожидается ГГГГ-ММ-ДД",
		})
		return nil, false
	}
	endDate, err := time.Parse(models.DateOnly, req.EndDate)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат даты окончания, ожидается ГГГГ-ММ-ДД",
		})
		return nil, false
	}
	if endDate.Before(startDate) {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Дата окончания не может быть раньше даты начала",
		})
		return nil, false
	}

	mentorID, _ := uuid.Parse(req.MentorID)
	mentor, err := h.userRepo.FindByID(c.Context(), mentorID)
	if err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Наставник не найден",
		})
		return nil, false
	}

	traineeID, _ := uuid.Parse(req.TraineeID)
	trainee, err := h.candidateRepo.FindByID(c.Context(), traineeID)
	if err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Стажёр не найден",
		})
		return nil, false
	}

	return &parsedStaffPlan{
		mentor:    mentor,
		trainee:   trainee,
		startDate: startDate,
		endDate:   endDate,
	}, true
}

func newStaffPlanResponse(p *models.StaffAdaptationPlan) models.StaffPlanResponse {
	return models.StaffPlanResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format(models.DateOnly),
		EndDate:   p.EndDate.Format(models.DateOnly),
		Mentor: models.PlanParty{
			ID:       p.Mentor.ID,
			Username: p.Mentor.Username,
		},
		Trainee: models.PlanParty{
			ID:       p.Trainee.ID,
			Username: p.Trainee.Username,
		},
	}
}
