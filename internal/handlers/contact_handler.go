package handlers

import (
	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contact *services.ContactService
}

func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var msg models.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return badBody(c)
	}

	id, err := h.contact.Submit(c.UserContext(), msg)
	if err != nil {
		return respondError(c, err, "Message")
	}

	return c.JSON(fiber.Map{"status": "received", "id": id})
}
