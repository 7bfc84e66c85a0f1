package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sandrello1971/newassessment/app/config"
	"github.com/sandrello1971/newassessment/app/database"
	"github.com/sandrello1971/newassessment/app/routes/auth"
	"github.com/sandrello1971/newassessment/app/routes/reports"
	"github.com/sandrello1971/newassessment/app/routes/results"
	"github.com/sandrello1971/newassessment/app/routes/sessions"
	"github.com/sandrello1971/newassessment/app/routes/templates"
)

// apiErrorHandler turns every unhandled error into a JSON body; the service
// has no HTML surface.
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.LoadEnv()

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@newassessment.local")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminPassword != "" {
		if err := database.EnsureAdminUser(config.GetDB(), adminEmail, adminPassword); err != nil {
			log.Fatal("Failed to ensure admin user:", err)
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
		BodyLimit:    20 * 1024 * 1024, // questionnaire workbooks and logos
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "degraded", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	sessions.SetupSessionsRoutes(app)
	results.SetupResultsRoutes(app)
	reports.SetupReportsRoutes(app)
	templates.SetupTemplatesRoutes(app)

	port := config.GetEnv("PORT", "8000")
	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
