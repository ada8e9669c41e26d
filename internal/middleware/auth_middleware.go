package middleware

import (
	"context"
	"errors"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
)

// TokenHeader carries the opaque bearer token issued at login.
const TokenHeader = "X-Token"

const userLocalsKey = "auth.user"

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequireUser rejects requests without a token that belongs to a user and
// stores the user on the context for the next handlers.
func RequireUser(auth TokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Authenticate(c.UserContext(), c.Get(TokenHeader))
		switch {
		case errors.Is(err, services.ErrMissingToken):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		case errors.Is(err, services.ErrInvalidToken):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		case err != nil:
			return err
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

func UserFromContext(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(userLocalsKey).(models.User)
	return user, ok
}
