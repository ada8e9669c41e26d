package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/arzan03/EduSphere/internal/observability"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	RequestIDHeader    = "X-Request-Id"
	requestIDLocalsKey = "requestid"
)

func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocalsKey,
	})
}

func RequestIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocalsKey).(string); ok {
		return id
	}
	return c.Get(RequestIDHeader)
}

func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		own := c.Route()

		err := resolveError(c, c.Next())

		log.InfoContext(c.UserContext(), "http_request",
			"method", c.Method(),
			"route", routeOf(c, own),
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", RequestIDFrom(c),
		)
		return err
	}
}

func Metrics(p *observability.Prom) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		own := c.Route()
		p.InFlight.Inc()
		defer p.InFlight.Dec()

		err := resolveError(c, c.Next())

		method := c.Method()
		route := routeOf(c, own)
		status := strconv.Itoa(c.Response().StatusCode())

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// resolveError renders err through the app error handler so the status code
// is final before it is logged or counted.
func resolveError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if herr := c.App().ErrorHandler(c, err); herr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}

// routeOf returns the matched route template. If routing found no handler,
// the current route is still the middleware's own.
func routeOf(c *fiber.Ctx, own *fiber.Route) string {
	r := c.Route()
	if r == nil || r == own {
		return "unmatched"
	}
	return r.Path
}
