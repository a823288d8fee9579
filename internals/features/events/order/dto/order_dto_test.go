package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	valid := func() CreateOrderRequest {
		return CreateOrderRequest{
			EventID:  uuid.NewString(),
			ZoneID:   uuid.NewString(),
			Quantity: 2,
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		r := valid()
		r.Normalize()
		assert.True(t, r.Validate().Empty())
	})

	t.Run("missing everything", func(t *testing.T) {
		r := CreateOrderRequest{}
		fe := r.Validate()
		assert.Equal(t, []string{"Event is required."}, fe["event_id"])
		assert.Equal(t, []string{"Price zone is required."}, fe["zone_id"])
		assert.Equal(t, []string{"Quantity is required."}, fe["quantity"])
	})

	t.Run("non-uuid ids", func(t *testing.T) {
		r := valid()
		r.EventID = "42"
		r.ZoneID = "first"
		fe := r.Validate()
		assert.Equal(t, []string{"Event id is not valid."}, fe["event_id"])
		assert.Equal(t, []string{"Price zone id is not valid."}, fe["zone_id"])
	})

	t.Run("quantity over the per-order cap", func(t *testing.T) {
		r := valid()
		r.Quantity = 11
		fe := r.Validate()
		assert.Equal(t, []string{"You can buy at most 10 tickets per order."}, fe["quantity"])
	})

	t.Run("normalize trims id whitespace", func(t *testing.T) {
		id := uuid.NewString()
		r := valid()
		r.EventID = "  " + id + " "
		r.Normalize()
		assert.Equal(t, id, r.EventID)
	})
}
