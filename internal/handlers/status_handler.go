package handlers

import (
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

const serviceName = "EduSphere API"

type StatusHandler struct {
	status *services.StatusService
}

func NewStatusHandler(status *services.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

func (h *StatusHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"name": serviceName, "status": "ok"})
}

func (h *StatusHandler) Test(c *fiber.Ctx) error {
	return c.JSON(h.status.Report(c.UserContext()))
}
