package handlers

import (
	"strconv"

	"github.com/arzan03/EduSphere/internal/middleware"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler exposes list/create/get for one catalog collection.
type CatalogHandler[T any, PT services.Document[T]] struct {
	svc  *services.Catalog[T, PT]
	noun string
}

func NewCatalogHandler[T any, PT services.Document[T]](svc *services.Catalog[T, PT], noun string) *CatalogHandler[T, PT] {
	return &CatalogHandler[T, PT]{svc: svc, noun: noun}
}

func (h *CatalogHandler[T, PT]) List(c *fiber.Ctx) error {
	limit := services.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, &services.ValidationError{Fields: []services.FieldError{
				{Field: "limit", Rule: "int", Message: "must be an integer"},
			}}, h.noun)
		}
		limit = n
	}

	items, err := h.svc.List(c.UserContext(), limit)
	if err != nil {
		return respondError(c, err, h.noun)
	}
	return c.JSON(items)
}

// Create checks the token itself, after validation, rather than behind
// RequireUser.
func (h *CatalogHandler[T, PT]) Create(c *fiber.Ctx) error {
	var doc T
	if err := c.BodyParser(&doc); err != nil {
		return badBody(c)
	}

	created, err := h.svc.Create(c.UserContext(), c.Get(middleware.TokenHeader), doc)
	if err != nil {
		return respondError(c, err, h.noun)
	}
	return c.JSON(created)
}

func (h *CatalogHandler[T, PT]) Get(c *fiber.Ctx) error {
	doc, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, h.noun)
	}
	return c.JSON(doc)
}
