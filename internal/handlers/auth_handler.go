package handlers

import (
	"github.com/gofiber/fiber/v2"

	"hradmin/recruitment-api/internal/middleware"
	"hradmin/recruitment-api/internal/models"
	"hradmin/recruitment-api/internal/repositories"
	"hradmin/recruitment-api/internal/services"
	"hradmin/recruitment-api/internal/session"
)

type AuthHandler struct {
	userRepo repositories.UserRepository
	tokens   services.TokenService
}

func NewAuthHandler(userRepo repositories.UserRepository, tokens services.TokenService) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// HandleLogin handles POST /api/login. A wrong password never issues a
// token; username and password failures are indistinguishable.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Неверный формат запроса",
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.userRepo.FindByUsername(c.Context(), req.Username)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Неверное имя пользователя или пароль",
		})
	}

	if !services.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Неверное имя пользователя или пароль",
		})
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Не удалось создать токен",
		})
	}

	return c.JSON(models.LoginResponse{
		Token:  token,
		Role:   user.Role,
		UserID: user.ID.String(),
	})
}

// HandleSession handles GET /api/session: the shell fetches the caller's
// capabilities and the menu computed from them in one call.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	claims := middleware.Claims(c)

	return c.JSON(models.SessionResponse{
		UserID:       claims.UserID.String(),
		Role:         claims.Role,
		Capabilities: claims.Capabilities,
		Menu:         session.Menu(claims.Capabilities),
	})
}
