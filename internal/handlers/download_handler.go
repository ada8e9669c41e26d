package handlers

import (
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DownloadHandler struct {
	downloads *services.DownloadService
}

func NewDownloadHandler(downloads *services.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Download returns a link to the product file. Runs behind RequireUser.
func (h *DownloadHandler) Download(c *fiber.Ctx) error {
	d, err := h.downloads.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(d)
}
