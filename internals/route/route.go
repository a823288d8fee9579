package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventhub_backend/internals/configs"
	eventController "eventhub_backend/internals/features/events/event/controller"
	eventRoute "eventhub_backend/internals/features/events/event/route"
	orderController "eventhub_backend/internals/features/events/order/controller"
	orderRoute "eventhub_backend/internals/features/events/order/route"
	orderService "eventhub_backend/internals/features/events/order/service"
	authController "eventhub_backend/internals/features/users/auth/controller"
	authRoute "eventhub_backend/internals/features/users/auth/route"
	userController "eventhub_backend/internals/features/users/user/controller"
	userRoute "eventhub_backend/internals/features/users/user/route"
	"eventhub_backend/internals/helpers/geocode"
	"eventhub_backend/internals/helpers/imagestore"
	authMiddleware "eventhub_backend/internals/middlewares/auth"
)

// Setup wires every feature route onto the app. Public routes go first;
// everything after the auth middleware requires a valid access token.
func Setup(app *fiber.App, db *gorm.DB, cfg *configs.Config, geocoder *geocode.Client, store imagestore.Store, gateway orderService.SnapTokenizer) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": cfg.AppVersion})
	})

	api := app.Group("/api")

	ac := authController.NewAuthController(db, cfg)
	pc := userController.NewProfileController(db, geocoder, store, cfg)
	ec := eventController.NewEventController(db, geocoder, store)
	oc := orderController.NewOrderController(db, gateway)

	authRoute.RegisterPublic(api, ac)
	eventRoute.RegisterPublic(api, ec)
	orderRoute.RegisterPublic(api, oc)

	api.Use(authMiddleware.Required(cfg.JWTSecret))

	authRoute.RegisterProtected(api, ac)
	userRoute.Register(api, pc)
	eventRoute.RegisterProtected(api, ec)
	orderRoute.RegisterProtected(api, oc)
}
