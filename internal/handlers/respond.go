package handlers

import (
	"errors"
	"log/slog"

	"github.com/arzan03/EduSphere/internal/middleware"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto status codes. noun names the
// resource in not-found messages, e.g. "Course".
func respondError(c *fiber.Ctx, err error, noun string) error {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		return jsonError(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrMissingToken):
		return jsonError(c, fiber.StatusUnauthorized, "Missing token")
	case errors.Is(err, services.ErrInvalidToken):
		return jsonError(c, fiber.StatusUnauthorized, "Invalid token")
	case errors.Is(err, services.ErrUnauthorized):
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrInvalidID):
		return jsonError(c, fiber.StatusBadRequest, "Invalid id")
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, noun+" not found")
	case errors.Is(err, services.ErrFileUnavailable):
		return jsonError(c, fiber.StatusNotFound, "File not available")
	}

	slog.Default().ErrorContext(c.UserContext(), "request failed",
		"err", err,
		"path", c.Path(),
		"request_id", middleware.RequestIDFrom(c),
	)
	return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func badBody(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
}

// ErrorHandler renders errors that escape handlers, such as unmatched routes
// and recovered panics.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return jsonError(c, fe.Code, fe.Message)
		}

		log.ErrorContext(c.UserContext(), "unhandled error",
			"err", err,
			"path", c.Path(),
			"request_id", middleware.RequestIDFrom(c),
		)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
