package auth

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	// Public routes
	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)

	// Protected routes
	api.Use(AuthMiddleware)
	api.Get("/me", MeAPI)
	api.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates the JWT and sets the user context. The token is
// read from the HTTP-only cookie first, then from the Authorization header
// for non-browser clients.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_role", claims.Role)

	return c.Next()
}

// RoleMiddleware rejects requests whose authenticated role is not allowed.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
