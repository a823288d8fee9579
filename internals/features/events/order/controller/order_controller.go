package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub_backend/internals/features/events/order/dto"
	"eventhub_backend/internals/features/events/order/service"
	userModel "eventhub_backend/internals/features/users/user/model"
	helper "eventhub_backend/internals/helpers"
)

type OrderController struct {
	DB      *gorm.DB
	Gateway service.SnapTokenizer
}

func NewOrderController(db *gorm.DB, gateway service.SnapTokenizer) *OrderController {
	return &OrderController{DB: db, Gateway: gateway}
}

// Create places a ticket order and returns the payment token.
func (oc *OrderController) Create(c *fiber.Ctx) error {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if fe := req.Validate(); !fe.Empty() {
		return helper.JsonValidationError(c, fe)
	}

	var user userModel.UserModel
	if err := oc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	eventID, _ := uuid.Parse(req.EventID)
	zoneID, _ := uuid.Parse(req.ZoneID)

	result, err := service.CreateOrder(oc.DB, oc.Gateway, &user, service.CreateOrderInput{
		EventID:  eventID,
		ZoneID:   zoneID,
		Quantity: req.Quantity,
	})
	if err != nil {
		fe := helper.FieldErrors{}
		switch {
		case errors.Is(err, service.ErrZoneNotFound):
			fe.Add("zone_id", "Select a valid price zone for this event.")
			return helper.JsonValidationError(c, fe)
		case errors.Is(err, service.ErrNotEnoughSeat):
			fe.Add("quantity", "Not enough seats left in this zone.")
			return helper.JsonValidationError(c, fe)
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create order")
		}
	}

	return helper.JsonCreated(c, "Order created", fiber.Map{
		"order":      dto.ToOrderResponse(&result.Order),
		"snap_token": result.SnapToken,
	})
}

// List returns the signed-in user's orders.
func (oc *OrderController) List(c *fiber.Ctx) error {
	userID, err := helper.CurrentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	orders, err := service.ListOrders(oc.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch orders")
	}
	return helper.JsonOK(c, "OK", dto.ToOrderResponses(orders))
}

// Webhook receives payment status notifications from the gateway. It is
// unauthenticated; the order code in the payload is the correlation key.
func (oc *OrderController) Webhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := service.HandleStatusWebhook(oc.DB, body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "OK", nil)
}
