package dto

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed reference clock: 2026-06-15 14:30 local
var testNow = time.Date(2026, 6, 15, 14, 30, 0, 0, time.Local)

func validInfo() EventInfoRequest {
	return EventInfoRequest{
		Name:        "Summer Jazz Night",
		Date:        "2026-07-01",
		Time:        "19:30",
		Location:    "Berlin, Germany",
		Category:    "music",
		SeatingType: "general",
		Description: "An open-air jazz evening.",
	}
}

func validCreate() CreateEventRequest {
	return CreateEventRequest{
		EventInfoRequest: validInfo(),
		Zones: []ZoneRequest{
			{ZoneName: "GA", ZonePrice: "25.00", ZoneSeats: "100"},
		},
	}
}

func TestEventInfoRequestValidate(t *testing.T) {
	t.Run("valid info passes", func(t *testing.T) {
		r := validInfo()
		r.Normalize()
		assert.True(t, r.Validate(testNow).Empty())
	})

	t.Run("empty form reports every required field", func(t *testing.T) {
		r := EventInfoRequest{}
		fe := r.Validate(testNow)
		for _, field := range []string{"name", "date", "time", "location", "category", "seating_type"} {
			assert.Contains(t, fe, field)
		}
	})

	t.Run("name over 100 characters", func(t *testing.T) {
		r := validInfo()
		r.Name = strings.Repeat("x", 101)
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Event name cannot exceed 100 characters."}, fe["name"])
	})

	t.Run("unknown category is an invalid choice, not missing", func(t *testing.T) {
		r := validInfo()
		r.Category = "knitting"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Select a valid event category."}, fe["category"])
	})

	t.Run("unknown seating type", func(t *testing.T) {
		r := validInfo()
		r.SeatingType = "standing"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Select a valid seating type."}, fe["seating_type"])
	})

	t.Run("date in the past", func(t *testing.T) {
		r := validInfo()
		r.Date = "2026-06-14"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Event date cannot be in the past."}, fe["date"])
	})

	t.Run("today is allowed", func(t *testing.T) {
		r := validInfo()
		r.Date = "2026-06-15"
		r.Time = "18:00"
		assert.True(t, r.Validate(testNow).Empty())
	})

	t.Run("earlier time today is rejected", func(t *testing.T) {
		r := validInfo()
		r.Date = "2026-06-15"
		r.Time = "09:00"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Event time cannot be in the past."}, fe["time"])
	})

	t.Run("earlier time on a future day is fine", func(t *testing.T) {
		r := validInfo()
		r.Date = "2026-07-01"
		r.Time = "09:00"
		assert.True(t, r.Validate(testNow).Empty())
	})

	t.Run("malformed date shape", func(t *testing.T) {
		r := validInfo()
		r.Date = "01/07/2026"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Enter a valid date (YYYY-MM-DD)."}, fe["date"])
	})

	t.Run("well-shaped but impossible date", func(t *testing.T) {
		r := validInfo()
		r.Date = "2026-02-31"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Enter a valid date (YYYY-MM-DD)."}, fe["date"])
	})
}

func TestCreateEventRequestValidate(t *testing.T) {
	t.Run("valid create passes", func(t *testing.T) {
		r := validCreate()
		assert.True(t, r.Validate(testNow).Empty())
	})

	t.Run("zero zones fails at the collection key", func(t *testing.T) {
		r := validCreate()
		r.Zones = nil
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"At least one price zone is required."}, fe["zones"])
	})

	t.Run("zone errors carry the row index in the key", func(t *testing.T) {
		r := validCreate()
		r.Zones = []ZoneRequest{
			{ZoneName: "GA", ZonePrice: "25.00", ZoneSeats: "100"},
			{ZoneName: "", ZonePrice: "12.345", ZoneSeats: "0"},
		}
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Zone name is required."}, fe["zones-1-zone_name"])
		assert.Equal(t, []string{"Enter a valid price with at most 2 decimal places."}, fe["zones-1-zone_price"])
		assert.Equal(t, []string{"At least 1 seat is required."}, fe["zones-1-zone_seats"])
		assert.NotContains(t, fe, "zones-0-zone_name")
	})

	t.Run("zone name over 50 characters", func(t *testing.T) {
		r := validCreate()
		r.Zones[0].ZoneName = strings.Repeat("z", 51)
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Zone name cannot exceed 50 characters."}, fe["zones-0-zone_name"])
	})

	t.Run("price shapes", func(t *testing.T) {
		for price, ok := range map[string]bool{
			"25":     true,
			"25.5":   true,
			"25.50":  true,
			"0":      true,
			"25.505": false,
			"-5":     false,
			"abc":    false,
			"25,00":  false,
		} {
			r := validCreate()
			r.Zones[0].ZonePrice = price
			fe := r.Validate(testNow)
			if ok {
				assert.NotContains(t, fe, "zones-0-zone_price", fmt.Sprintf("price %q", price))
			} else {
				assert.Contains(t, fe, "zones-0-zone_price", fmt.Sprintf("price %q", price))
			}
		}
	})

	t.Run("seats must be a whole number", func(t *testing.T) {
		r := validCreate()
		r.Zones[0].ZoneSeats = "12.5"
		fe := r.Validate(testNow)
		assert.Equal(t, []string{"Seats must be a whole number."}, fe["zones-0-zone_seats"])
	})
}

func TestCreateEventRequestToModel(t *testing.T) {
	r := validCreate()
	r.Zones = append(r.Zones, ZoneRequest{ZoneName: "VIP", ZonePrice: "99.99", ZoneSeats: "20"})
	require.True(t, r.Validate(testNow).Empty())

	organizer := uuid.New()
	ev := r.ToModel(organizer)

	assert.Equal(t, organizer, ev.OrganizerID)
	assert.Equal(t, "Summer Jazz Night", ev.Name)
	assert.Equal(t, "2026-07-01", time.Time(ev.Date).Format("2006-01-02"))
	assert.Equal(t, "music", ev.Category)

	require.Len(t, ev.PriceZones, 2)
	assert.Equal(t, "GA", ev.PriceZones[0].ZoneName)
	assert.Equal(t, 25.00, ev.PriceZones[0].ZonePrice)
	assert.Equal(t, 100, ev.PriceZones[0].ZoneSeats)
	assert.Equal(t, "VIP", ev.PriceZones[1].ZoneName)
	assert.Equal(t, 99.99, ev.PriceZones[1].ZonePrice)

	resp := ToEventResponse(ev)
	assert.Equal(t, "19:30", resp.Time)
	assert.Equal(t, "2026-07-01", resp.Date)
}
