package route

import (
	"github.com/gofiber/fiber/v2"

	"eventhub_backend/internals/features/users/auth/controller"
)

// RegisterPublic mounts the endpoints that issue sessions.
func RegisterPublic(api fiber.Router, ac *controller.AuthController) {
	auth := api.Group("/auth")
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)
	auth.Post("/login-google", ac.LoginGoogle)
}

// RegisterProtected mounts the endpoints that need a valid session.
func RegisterProtected(api fiber.Router, ac *controller.AuthController) {
	auth := api.Group("/auth")
	auth.Post("/logout", ac.Logout)
	auth.Post("/change-password", ac.ChangePassword)
}
