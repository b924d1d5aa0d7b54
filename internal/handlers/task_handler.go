package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
)

type TaskHandler struct {
	taskRepo      repositories.TaskRepository
	candidateRepo repositories.CandidateRepository
}

func NewTaskHandler(
	taskRepo repositories.TaskRepository,
	candidateRepo repositories.CandidateRepository,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:      taskRepo,
		candidateRepo: candidateRepo,
	}
}

// HandleList handles GET /tasks
func (h *TaskHandler) HandleList(c *fiber.Ctx) error {
	tasks, err := h.taskRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить задачи",
		})
	}

	responses := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, models.NewTaskResponse(&tasks[i]))
	}
	return c.JSON(responses)
}

// HandleCreate handles POST /tasks
func (h *TaskHandler) HandleCreate(c *fiber.Ctx) error {
	req, deadline, ok := h.parseTaskRequest(c)
	if !ok {
		return nil
	}

	task := &models.Task{
		ID:        uuid.New(),
		Title:     req.Title,
		Deadline:  deadline,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.taskRepo.Create(c.Context(), task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось создать задачу",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewTaskResponse(task))
}

// HandleUpdate handles PUT /tasks/:id
func (h *TaskHandler) HandleUpdate(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора задачи",
		})
	}

	req, deadline, ok := h.parseTaskRequest(c)
	if !ok {
		return nil
	}

	task := &models.Task{ID: taskID, Title: req.Title, Deadline: deadline}
	if err := h.taskRepo.Update(c.Context(), task); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Задача не найдена",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить задачу",
		})
	}

	return c.JSON(models.NewTaskResponse(task))
}

// HandleDelete handles DELETE /tasks/:id; assignments of the task go
// with it.
func (h *TaskHandler) HandleDelete(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора задачи",
		})
	}

	if err := h.taskRepo.Delete(c.Context(), taskID); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Задача не найдена",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось удалить задачу",
		})
	}

	return c.JSON(fiber.Map{"message": "Задача удалена"})
}

// HandleAssign handles POST /assign-task. The body is a batch of
// candidate/task pairs; all of them land or none do.
func (h *TaskHandler) HandleAssign(c *fiber.Ctx) error {
	var reqs []models.AssignTaskRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if len(reqs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Не выбраны кандидаты",
		})
	}

	assignments := make([]models.TaskAssignment, 0, len(reqs))
	for _, req := range reqs {
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}
		candidateID, err := uuid.Parse(req.CandidateID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат идентификатора кандидата",
			})
		}
		taskID, err := uuid.Parse(req.TaskID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неверный формат идентификатора задачи",
			})
		}

		if _, err := h.candidateRepo.FindByID(c.Context(), candidateID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Кандидат не найден",
			})
		}
		if _, err := h.taskRepo.FindByID(c.Context(), taskID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Задача не найдена",
			})
		}

		assignments = append(assignments, models.TaskAssignment{
			ID:          uuid.New(),
			CandidateID: candidateID,
			TaskID:      taskID,
			Status:      models.AssignmentNotStarted,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})
	}

	if err := h.taskRepo.AssignMany(c.Context(), assignments); err != nil {
		if errors.Is(err, repositories.ErrAlreadyAssigned) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Задача уже назначена этому кандидату!",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Ошибка при назначении задачи",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Задачи успешно назначены",
		"assigned": len(assignments),
	})
}

// HandleAssignedRows handles GET /assigned-tasks
func (h *TaskHandler) HandleAssignedRows(c *fiber.Ctx) error {
	rows, err := h.taskRepo.FindAssignedRows(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить назначенные задачи",
		})
	}
	return c.JSON(rows)
}

// HandleUpdateAssignmentStatus handles PATCH /assigned-tasks/:id/status
func (h *TaskHandler) HandleUpdateAssignmentStatus(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора назначения",
		})
	}

	var req models.UpdateAssignmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	status := models.AssignmentStatus(req.Status)
	if !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неизвестный статус задачи",
		})
	}

	if err := h.taskRepo.UpdateAssignmentStatus(c.Context(), assignmentID, status); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Назначение не найдено",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить статус",
		})
	}

	return c.JSON(fiber.Map{
		"id":     assignmentID,
		"status": status,
		"label":  status.Label(),
	})
}

// parseTaskRequest parses and validates a task payload. On failure the
// response is already written and ok is false.
func (h *TaskHandler) parseTaskRequest(c *fiber.Ctx) (*models.TaskRequest, time.Time, bool) {
	var req models.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
		return nil, time.Time{}, false
	}
	if err := validate.Struct(req); err != nil {
		validationError(c, err)
		return nil, time.Time{}, false
	}

	deadline, err := time.Parse(models.DateOnly, req.Deadline)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат срока выполнения",
		})
		return nil, time.Time{}, false
	}
	return &req, deadline, true
}
