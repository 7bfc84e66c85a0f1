package templates

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sandrello1971/newassessment/app/routes/auth"
)

var validate = validator.New()

// Template management is admin-only; reading templates and questions is open
// to every authenticated user so the frontend can render questionnaires.
func SetupTemplatesRoutes(app *fiber.App) {
	api := app.Group("/api/templates", auth.AuthMiddleware)

	api.Get("/", ListTemplatesAPI)
	api.Get("/:id", GetTemplateAPI)
	api.Get("/:id/versions", ListVersionsAPI)
	api.Get("/versions/:version_id/questions", GetVersionQuestionsAPI)

	admin := api.Group("/", auth.RoleMiddleware("admin"))
	admin.Post("/", CreateTemplateAPI)
	admin.Post("/:id/import", ImportVersionAPI)
	admin.Post("/versions/:version_id/deprecate", DeprecateVersionAPI)
	admin.Post("/versions/:version_id/questions", AddQuestionAPI)
	admin.Delete("/questions/:question_id", DeactivateQuestionAPI)
}
