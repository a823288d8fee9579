package route

import (
	"github.com/gofiber/fiber/v2"

	"eventhub_backend/internals/features/users/user/controller"
)

// Register mounts the profile endpoints; the caller attaches the auth
// middleware to the group.
func Register(api fiber.Router, pc *controller.ProfileController) {
	users := api.Group("/users")
	users.Get("/me", pc.Me)
	users.Put("/me", pc.UpdateProfile)
	users.Put("/me/avatar", pc.UpdateAvatar)
	users.Delete("/me/avatar", pc.ResetAvatar)
}
