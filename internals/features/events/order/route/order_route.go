package route

import (
	"github.com/gofiber/fiber/v2"

	"eventhub_backend/internals/features/events/order/controller"
)

// RegisterProtected mounts the order endpoints that require a signed-in user.
func RegisterProtected(api fiber.Router, oc *controller.OrderController) {
	orders := api.Group("/orders")
	orders.Post("/", oc.Create)
	orders.Get("/", oc.List)
}

// RegisterPublic mounts the payment gateway notification endpoint.
func RegisterPublic(api fiber.Router, oc *controller.OrderController) {
	api.Post("/payments/notification", oc.Webhook)
}
