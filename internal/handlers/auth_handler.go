package handlers

import (
	"github.com/arzan03/EduSphere/internal/middleware"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "User")
	}

	return c.JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "User")
	}

	return c.JSON(res)
}

// Me runs behind middleware.RequireUser.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Missing token")
	}
	return c.JSON(user.Public())
}
