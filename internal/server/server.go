package server

import (
	"log"

	"healthcare-chatbot-be/internal/bootstrap"
	"healthcare-chatbot-be/internal/config"
	"healthcare-chatbot-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := newApp(cfg.App.CorsAllowedOrigins)
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// newApp builds the fiber app with the middleware chain every route shares. The envelope
// middleware sits outside recover so a recovered panic still answers with the envelope.
func newApp(allowOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // Whisper's upload cap
	})

	app.Use(serverutils.ErrorHandlerMiddleware())
	app.Use(recover.New())

	// Browsers reject credentialed responses with a wildcard origin, and fiber panics on that combination.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowCredentials: allowOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	app.Use(otelfiber.Middleware())

	return app
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.HealthController.RegisterRoutes(api)
	c.AuthController.RegisterRoutes(api, c.RateLimiter.Handler(), c.AuthMiddleware)
	c.ChatbotController.RegisterRoutes(api, c.AuthMiddleware)
	c.DoctorController.RegisterRoutes(api, c.AuthMiddleware)
	c.AppointmentController.RegisterRoutes(api, c.AuthMiddleware)
	c.VoiceController.RegisterRoutes(api, c.AuthMiddleware)
}
