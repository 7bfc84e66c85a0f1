package sessions

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sandrello1971/newassessment/app/routes/auth"
)

var validate = validator.New()

func SetupSessionsRoutes(app *fiber.App) {
	api := app.Group("/api/assessment", auth.AuthMiddleware)

	api.Post("/session", CreateSessionAPI)
	api.Get("/sessions", ListSessionsAPI)
	api.Get("/session/:id", GetSessionAPI)
	api.Post("/session/:id/close", CloseSessionAPI)
	api.Post("/session/:id/logo", UploadLogoAPI)
	api.Delete("/session/:id", auth.RoleMiddleware("admin"), DeleteSessionAPI)
}
