package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
)

type CandidateHandler struct {
	candidateRepo  repositories.CandidateRepository
	taskRepo       repositories.TaskRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
	maxFileSize    int64
}

func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	taskRepo repositories.TaskRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
	maxFileSize int64,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo:  candidateRepo,
		taskRepo:       taskRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	candidates, err := h.candidateRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить кандидатов",
		})
	}

	responses := make([]models.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		responses = append(responses, models.NewCandidateResponse(&candidates[i]))
	}
	return c.JSON(responses)
}

// HandleGet handles GET /candidates/:id
func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора кандидата",
		})
	}

	candidate, err := h.candidateRepo.FindByID(c.Context(), candidateID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Кандидат не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить кандидата",
		})
	}

	return c.JSON(models.NewCandidateResponse(candidate))
}

// HandleTrainees handles GET /api/candidates/trainees: accepted
// candidates undergoing onboarding.
func (h *CandidateHandler) HandleTrainees(c *fiber.Ctx) error {
	trainees, err := h.candidateRepo.FindAccepted(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить список стажеров",
		})
	}

	responses := make([]models.CandidateResponse, 0, len(trainees))
	for i := range trainees {
		responses = append(responses, models.NewCandidateResponse(&trainees[i]))
	}
	return c.JSON(responses)
}

// HandleUpdateAdminStatus handles POST /updateAdminStatus. Moving a
// candidate to "interview" requires the interview date.
func (h *CandidateHandler) HandleUpdateAdminStatus(c *fiber.Ctx) error {
	var req models.UpdateAdminStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	candidateID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора кандидата",
		})
	}

	status := models.AdminStatus(req.AdminStatus)
	switch status {
	case models.AdminInterview, models.AdminAccepted, models.AdminRejected, models.AdminNotAssigned:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Неизвестный статус: %s", req.AdminStatus),
		})
	}

	var interviewDate *time.Time
	if status == models.AdminInterview {
		if req.InterviewDate == nil || *req.InterviewDate == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Пожалуйста, выберите дату и время собеседования",
			})
		}
		parsed, err := time.Parse(time.RFC3339, *req.InterviewDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат даты собеседования",
			})
		}
		interviewDate = &parsed
	}

	if err := h.candidateRepo.UpdateAdminStatus(c.Context(), candidateID, status, interviewDate); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Кандидат не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при обновлении статуса",
		})
	}

	return c.JSON(fiber.Map{
		"id":          candidateID,
		"adminStatus": status,
		"label":       status.Label(),
	})
}

// HandleCandidateTasks handles GET /candidateTasks/:id: the candidate's
// checklist with its completion percentage and the pie breakdown.
func (h *CandidateHandler) HandleCandidateTasks(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора кандидата",
		})
	}

	assignments, err := h.taskRepo.FindByCandidate(c.Context(), candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить задачи кандидата",
		})
	}

	items := make([]models.CandidateTaskItem, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, models.CandidateTaskItem{
			ID:          a.ID,
			Title:       a.Task.Title,
			Deadline:    a.Task.Deadline.Format(models.DateOnly),
			Status:      a.Status,
			StatusLabel: a.Status.Label(),
			StatusColor: a.Status.Color(),
		})
	}

	percent := services.CompletionPercentage(assignments)
	return c.JSON(models.CandidateTasksResponse{
		Tasks:                items,
		CompletionPercentage: percent,
		Chart:                services.ProgressChartFor(percent),
	})
}

// HandleUploadResume handles POST /candidates/:id/resume: stores the PDF
// and keeps the extracted text and page count on the candidate.
func (h *CandidateHandler) HandleUploadResume(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора кандидата",
		})
	}

	if _, err := h.candidateRepo.FindByID(c.Context(), candidateID); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Кандидат не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить кандидата",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Файл резюме не найден в запросе",
		})
	}
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Файл слишком большой. Максимум: %d байт", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Не удалось сохранить файл резюме",
		})
	}

	content, err := h.resumeParser.ExtractResume(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Не удалось прочитать PDF файл",
		})
	}

	resumeURL := "/resumes/" + filename
	if err := h.candidateRepo.UpdateResume(c.Context(), candidateID, resumeURL, content.Text, content.PageCount); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось сохранить резюме",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"resumeUrl": resumeURL,
		"pages":     content.PageCount,
	})
}
