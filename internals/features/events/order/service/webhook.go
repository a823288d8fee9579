package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"eventhub_backend/internals/features/events/order/model"
)

// HandleStatusWebhook applies a payment gateway notification to the
// matching order. Unknown transaction statuses are logged and ignored so
// the gateway does not keep retrying.
func HandleStatusWebhook(db *gorm.DB, body map[string]interface{}) error {
	orderCode, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[WEBHOOK] incomplete payload:", body)
		return fmt.Errorf("invalid payload")
	}

	var order model.OrderModel
	if err := db.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		return fmt.Errorf("order %s not found", orderCode)
	}

	switch status {
	case "capture", "settlement":
		now := time.Now()
		order.Status = model.StatusPaid
		order.PaidAt = &now
	case "expire":
		order.Status = model.StatusExpired
	case "cancel", "deny":
		order.Status = model.StatusCanceled
	default:
		log.Println("[WEBHOOK] ignored status:", status, "order:", orderCode)
		return nil
	}

	if raw, err := json.Marshal(body); err == nil {
		order.PaymentPayload = raw
	}

	if err := db.Save(&order).Error; err != nil {
		log.Println("[WEBHOOK] failed to save order:", err)
		return err
	}
	return nil
}
