package route

import (
	"github.com/gofiber/fiber/v2"

	"eventhub_backend/internals/features/events/event/controller"
)

// RegisterPublic mounts event browsing.
func RegisterPublic(api fiber.Router, ec *controller.EventController) {
	events := api.Group("/events")
	events.Get("/", ec.List)
	events.Get("/:id", ec.Get)
}

// RegisterProtected mounts the organizer operations; the caller attaches the
// auth middleware to the group.
func RegisterProtected(api fiber.Router, ec *controller.EventController) {
	events := api.Group("/events")
	events.Post("/", ec.Create)
	events.Put("/:id", ec.Update)
	events.Delete("/:id", ec.Delete)
}
