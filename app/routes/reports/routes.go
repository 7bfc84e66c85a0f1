package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sandrello1971/newassessment/app/routes/auth"
)

func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/assessment", auth.AuthMiddleware)

	api.Get("/report/:id", GetReportAPI)
	api.Get("/classification/:id", GetClassificationAPI)
	api.Get("/radar/:id", GetRadarAPI)
	api.Get("/pareto/:id", GetParetoAPI)
	api.Get("/report/:id/pdf", DownloadReportPDFAPI)
	api.Post("/recommendations/:id", SaveRecommendationsAPI)
	api.Post("/recommendations/:id/generate", GenerateRecommendationsAPI)
}
