package results

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sandrello1971/newassessment/app/routes/auth"
)

var validate = validator.New()

func SetupResultsRoutes(app *fiber.App) {
	api := app.Group("/api/assessment", auth.AuthMiddleware)

	api.Post("/submit/:id", SubmitResultsAPI)
	api.Get("/results/:id", GetResultsAPI)
	api.Get("/stats/:id", GetStatsAPI)
}
