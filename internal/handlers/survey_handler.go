package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
)

// SurveyHandler serves the raw survey responses, the grouped report, and
// the survey broadcast.
type SurveyHandler struct {
	surveyRepo    repositories.SurveyResponseRepository
	candidateRepo repositories.CandidateRepository
	notifRepo     repositories.NotificationRepository
	dispatcher    services.Dispatcher
}

func NewSurveyHandler(
	surveyRepo repositories.SurveyResponseRepository,
	candidateRepo repositories.CandidateRepository,
	notifRepo repositories.NotificationRepository,
	dispatcher services.Dispatcher,
) *SurveyHandler {
	return &SurveyHandler{
		surveyRepo:    surveyRepo,
		candidateRepo: candidateRepo,
		notifRepo:     notifRepo,
		dispatcher:    dispatcher,
	}
}

// HandleListResponses handles GET /surveyResponses: the flat, ungrouped
// answer records.
func (h *SurveyHandler) HandleListResponses(c *fiber.Ctx) error {
	responses, err := h.surveyRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке ответов",
		})
	}
	return c.JSON(responses)
}

// HandleReport handles GET /surveyResponses/report. Query params:
// search, maxRating, from, to (both YYYY-MM-DD), sort (recent|average),
// page (1-based, fixed page size).
func (h *SurveyHandler) HandleReport(c *fiber.Ctx) error {
	query, ok := h.parseReportQuery(c)
	if !ok {
		return nil
	}

	records, err := h.surveyRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке ответов",
		})
	}

	return c.JSON(services.BuildReport(records, query))
}

// HandleSendSurvey handles POST /survey: queue a survey invite for every
// candidate. Delivery happens asynchronously in the dispatcher.
func (h *SurveyHandler) HandleSendSurvey(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке кандидатов",
		})
	}
	if len(candidates) == 0 {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Опрос отправлен",
			"queued":  0,
		})
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(candidates))
	for _, candidate := range candidates {
		notifications = append(notifications, models.Notification{
			ID:          uuid.New(),
			CandidateID: candidate.ID,
			Kind:        models.NotificationSurveyInvite,
			Message:     "Пожалуйста, пройдите опрос адаптации",
			Status:      models.NotificationQueued,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := h.notifRepo.CreateBatch(c.Context(), notifications); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось отправить опрос",
		})
	}
	for _, n := range notifications {
		h.dispatcher.Enqueue(n.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Опрос отправлен",
		"queued":  len(notifications),
	})
}

func (h *SurveyHandler) parseReportQuery(c *fiber.Ctx) (services.ReportQuery, bool) {
	query := services.ReportQuery{
		Search: c.Query("search"),
		Sort:   services.SortRecent,
		Page:   1,
	}

	if raw := c.Query("maxRating"); raw != "" {
		maxRating, err := strconv.Atoi(raw)
		if err != nil || maxRating < 1 {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверное значение maxRating",
			})
			return services.ReportQuery{}, false
		}
		query.MaxRating = maxRating
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(models.DateOnly, raw)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат даты начала, ожидается ГГГГ-ММ-ДД",
			})
			return services.ReportQuery{}, false
		}
		query.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(models.DateOnly, raw)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат даты окончания, ожидается ГГГГ-ММ-ДД",
			})
			return services.ReportQuery{}, false
		}
		query.To = &to
	}

	if raw := c.Query("sort"); raw != "" {
		switch services.SortKey(raw) {
		case services.SortRecent, services.SortAverage:
			query.Sort = services.SortKey(raw)
		default:
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверное значение sort, ожидается recent или average",
			})
			return services.ReportQuery{}, false
		}
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный номер страницы",
			})
			return services.ReportQuery{}, false
		}
		query.Page = page
	}

	return query, true
}
