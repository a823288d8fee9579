package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	eventModel "eventhub_backend/internals/features/events/event/model"
	"eventhub_backend/internals/features/events/order/model"
	userModel "eventhub_backend/internals/features/users/user/model"
)

var (
	ErrZoneNotFound  = errors.New("price zone not found for this event")
	ErrNotEnoughSeat = errors.New("not enough seats left in this zone")
)

type CreateOrderInput struct {
	EventID  uuid.UUID
	ZoneID   uuid.UUID
	Quantity int
}

type CreateOrderResult struct {
	Order     model.OrderModel
	SnapToken string
}

// CreateOrder reserves seats and creates the pending order in one
// transaction. The zone row is locked so two buyers cannot oversell the
// last seats; the payment token is requested before commit so a gateway
// failure leaves no dangling order.
func CreateOrder(db *gorm.DB, gateway SnapTokenizer, user *userModel.UserModel, in CreateOrderInput) (*CreateOrderResult, error) {
	var result CreateOrderResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var zone eventModel.EventPriceZoneModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND event_id = ?", in.ZoneID, in.EventID).
			First(&zone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrZoneNotFound
			}
			return err
		}

		var sold int64
		if err := tx.Model(&model.OrderModel{}).
			Where("zone_id = ? AND status IN ?", zone.ID, []string{model.StatusPending, model.StatusPaid}).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&sold).Error; err != nil {
			return err
		}
		if int64(zone.ZoneSeats)-sold < int64(in.Quantity) {
			return ErrNotEnoughSeat
		}

		codes := make(pq.StringArray, 0, in.Quantity)
		for i := 0; i < in.Quantity; i++ {
			codes = append(codes, newTicketCode())
		}

		order := model.OrderModel{
			OrderCode:   newOrderCode(),
			UserID:      user.ID,
			EventID:     in.EventID,
			ZoneID:      zone.ID,
			Quantity:    in.Quantity,
			TotalPrice:  zone.ZonePrice * float64(in.Quantity),
			Status:      model.StatusPending,
			TicketCodes: codes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		token, err := gateway.SnapToken(order.OrderCode, grossAmount(order.TotalPrice), user.FullName, user.Email)
		if err != nil {
			return fmt.Errorf("payment gateway: %w", err)
		}

		result.Order = order
		result.SnapToken = token
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOrders returns the user's orders, newest first.
func ListOrders(db *gorm.DB, userID uuid.UUID) ([]model.OrderModel, error) {
	var orders []model.OrderModel
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// grossAmount rounds to the nearest whole unit for the gateway; a bare int64
// conversion would truncate 76.50 down to 76 and under-charge the order.
func grossAmount(total float64) int64 {
	return int64(math.Round(total))
}

func newOrderCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("EVT-%d-%s", time.Now().Unix(), strings.ToUpper(raw[:8]))
}

func newTicketCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TKT-" + strings.ToUpper(raw[:12])
}
