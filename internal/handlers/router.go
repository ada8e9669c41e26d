package handlers

import (
	"log/slog"

	"github.com/arzan03/EduSphere/internal/middleware"
	"github.com/arzan03/EduSphere/internal/observability"
	"github.com/arzan03/EduSphere/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Log         *slog.Logger
	Prom        *observability.Prom
	Gatherer    prometheus.Gatherer
	CORSOrigins string

	Auth      *services.AuthService
	Courses   *services.CourseService
	Products  *services.ProductService
	Contact   *services.ContactService
	Downloads *services.DownloadService
	Status    *services.StatusService
}

// NewApp builds the fiber app with middleware and every route.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: ErrorHandler(d.Log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(middleware.Metrics(d.Prom))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.TokenHeader,
	}))

	requireUser := middleware.RequireUser(d.Auth)

	status := NewStatusHandler(d.Status)
	app.Get("/", status.Root)
	app.Get("/test", status.Test)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	authHandler := NewAuthHandler(d.Auth)
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	app.Get("/me", requireUser, authHandler.Me)

	courses := NewCatalogHandler(d.Courses, "Course")
	app.Get("/courses", courses.List)
	app.Post("/courses", courses.Create)
	app.Get("/courses/:id", courses.Get)

	products := NewCatalogHandler(d.Products, "Product")
	app.Get("/products", products.List)
	app.Post("/products", products.Create)
	app.Get("/products/:id", products.Get)

	downloads := NewDownloadHandler(d.Downloads)
	app.Get("/products/:id/download", requireUser, downloads.Download)

	contact := NewContactHandler(d.Contact)
	app.Post("/contact", contact.Submit)

	return app
}
