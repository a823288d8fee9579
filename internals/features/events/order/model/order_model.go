package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	eventModel "eventhub_backend/internals/features/events/event/model"
	userModel "eventhub_backend/internals/features/users/user/model"
)

const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
)

// OrderModel is one ticket purchase: N seats in one price zone of one event.
// OrderCode doubles as the payment gateway's order id.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderCode string    `gorm:"size:40;uniqueIndex;not null" json:"order_code"`

	UserID uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User   userModel.UserModel `gorm:"foreignKey:UserID" json:"-"`

	EventID uuid.UUID             `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   eventModel.EventModel `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`

	ZoneID uuid.UUID                      `gorm:"type:uuid;not null;index" json:"zone_id"`
	Zone   eventModel.EventPriceZoneModel `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"-"`

	Quantity   int     `gorm:"not null" json:"quantity"`
	TotalPrice float64 `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Status     string  `gorm:"size:12;not null;default:'pending'" json:"status"`

	// one code per seat, issued at order time
	TicketCodes pq.StringArray `gorm:"type:text[]" json:"ticket_codes"`

	// raw gateway notification, kept verbatim for audits
	PaymentPayload datatypes.JSON `json:"-"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// SeatsHeld reports whether this order still counts against zone capacity.
func (o *OrderModel) SeatsHeld() bool {
	return o.Status == StatusPending || o.Status == StatusPaid
}
