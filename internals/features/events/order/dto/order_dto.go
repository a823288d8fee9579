package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"eventhub_backend/internals/features/events/order/model"
	helper "eventhub_backend/internals/helpers"
)

type CreateOrderRequest struct {
	EventID  string `json:"event_id" validate:"required,uuid4"`
	ZoneID   string `json:"zone_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=10"`
}

var createOrderMessages = helper.Messages{
	"event_id": {
		"required": "Event is required.",
		"uuid4":    "Event id is not valid.",
	},
	"zone_id": {
		"required": "Price zone is required.",
		"uuid4":    "Price zone id is not valid.",
	},
	"quantity": {
		"required": "Quantity is required.",
		"min":      "Quantity must be at least 1.",
		"max":      "You can buy at most 10 tickets per order.",
	},
}

func (r *CreateOrderRequest) Normalize() {
	r.EventID = strings.TrimSpace(r.EventID)
	r.ZoneID = strings.TrimSpace(r.ZoneID)
}

func (r *CreateOrderRequest) Validate() helper.FieldErrors {
	fe := helper.FieldErrors{}
	if err := helper.Validate.Struct(r); err != nil {
		fe.Merge(helper.CollectFieldErrors(err, createOrderMessages))
	}
	return fe
}

type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderCode   string     `json:"order_code"`
	EventID     uuid.UUID  `json:"event_id"`
	ZoneID      uuid.UUID  `json:"zone_id"`
	Quantity    int        `json:"quantity"`
	TotalPrice  float64    `json:"total_price"`
	Status      string     `json:"status"`
	TicketCodes []string   `json:"ticket_codes"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToOrderResponse(o *model.OrderModel) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderCode:   o.OrderCode,
		EventID:     o.EventID,
		ZoneID:      o.ZoneID,
		Quantity:    o.Quantity,
		TotalPrice:  o.TotalPrice,
		Status:      o.Status,
		TicketCodes: o.TicketCodes,
		PaidAt:      o.PaidAt,
		CreatedAt:   o.CreatedAt,
	}
}

func ToOrderResponses(orders []model.OrderModel) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
