package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
)

// NotificationHandler serves /api/notifications/send: queue a message for
// a chosen set of candidates.
type NotificationHandler struct {
	candidateRepo repositories.CandidateRepository
	notifRepo     repositories.NotificationRepository
	dispatcher    services.Dispatcher
}

func NewNotificationHandler(
	candidateRepo repositories.CandidateRepository,
	notifRepo repositories.NotificationRepository,
	dispatcher services.Dispatcher,
) *NotificationHandler {
	return &NotificationHandler{
		candidateRepo: candidateRepo,
		notifRepo:     notifRepo,
		dispatcher:    dispatcher,
	}
}

// HandleSend handles POST /api/notifications/send
func (h *NotificationHandler) HandleSend(c *fiber.Ctx) error {
	var req models.SendNotificationsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	ids := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат идентификатора кандидата",
			})
		}
		ids = append(ids, id)
	}

	candidates, err := h.candidateRepo.FindByIDs(c.Context(), ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при загрузке кандидатов",
		})
	}
	if len(candidates) != len(ids) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Некоторые кандидаты не найдены",
		})
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(candidates))
	for _, candidate := range candidates {
		notifications = append(notifications, models.Notification{
			ID:          uuid.New(),
			CandidateID: candidate.ID,
			Kind:        models.NotificationMessage,
			Message:     req.Message,
			Status:      models.NotificationQueued,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := h.notifRepo.CreateBatch(c.Context(), notifications); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось отправить уведомления",
		})
	}
	for _, n := range notifications {
		h.dispatcher.Enqueue(n.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Уведомления отправлены",
		"queued":  len(notifications),
	})
}
