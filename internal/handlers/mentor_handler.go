package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
)

type MentorHandler struct {
	userRepo repositories.UserRepository
}

func NewMentorHandler(userRepo repositories.UserRepository) *MentorHandler {
	return &MentorHandler{userRepo: userRepo}
}

// HandleList handles GET /mentors. Passwords never leave the server.
func (h *MentorHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить наставников",
		})
	}

	responses := make([]models.MentorResponse, 0, len(users))
	for i := range users {
		responses = append(responses, models.NewMentorResponse(&users[i]))
	}
	return c.JSON(responses)
}

// HandleCreate handles POST /mentors
func (h *MentorHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.MentorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleLine
	}
	if !role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неизвестная роль",
		})
	}

	if _, err := h.userRepo.FindByUsername(c.Context(), req.Username); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Пользователь с таким именем уже существует",
		})
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось создать наставника",
		})
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось создать наставника",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewMentorResponse(user))
}

// HandleUpdate handles PUT /mentors/:id
func (h *MentorHandler) HandleUpdate(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора наставника",
		})
	}

	var req models.MentorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}

	user, err := h.userRepo.FindByID(c.Context(), userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Наставник не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось загрузить наставника",
		})
	}

	if req.Username != "" {
		user.Username = strings.TrimSpace(req.Username)
	}
	if req.Role != "" {
		if !req.Role.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Неизвестная роль",
			})
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := services.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Не удалось обновить наставника",
			})
		}
		user.PasswordHash = hash
	}

	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось обновить наставника",
		})
	}

	return c.JSON(models.NewMentorResponse(user))
}

// HandleDelete handles DELETE /mentors/:id. A missing mentor is an
// error the panel surfaces; the local list stays as it was.
func (h *MentorHandler) HandleDelete(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат идентификатора наставника",
		})
	}

	if err := h.userRepo.Delete(c.Context(), userID); err != nil {
		if repositories.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Наставник не найден",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось удалить наставника",
		})
	}

	return c.JSON(fiber.Map{"message": "Наставник удалён"})
}
