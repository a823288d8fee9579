package dto

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	eventModel "eventhub_backend/internals/features/events/event/model"
	helper "eventhub_backend/internals/helpers"
)

var rePrice = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// EventInfoRequest carries the info block shared by create and update. The
// parsed date/clock values are filled by Validate and consumed by ToModel.
type EventInfoRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Date        string `json:"date" form:"date" validate:"required,dateymd"`
	Time        string `json:"time" form:"time" validate:"required,hhmm"`
	Location    string `json:"location" form:"location" validate:"required,max=255"`
	Category    string `json:"category" form:"category" validate:"required"`
	SeatingType string `json:"seating_type" form:"seating_type" validate:"required"`
	Description string `json:"description" form:"description" validate:"omitempty,max=5000"`

	date  time.Time
	clock time.Duration
}

var eventInfoMessages = helper.Messages{
	"name": {
		"required": "Event name is required.",
		"max":      "Event name cannot exceed 100 characters.",
	},
	"date": {
		"required": "Event date is required.",
		"dateymd":  "Enter a valid date (YYYY-MM-DD).",
	},
	"time": {
		"required": "Event time is required.",
		"hhmm":     "Enter a valid time (HH:MM).",
	},
	"location": {
		"required": "Event location is required.",
		"max":      "Location length exceeded.",
	},
	"category": {
		"required": "Event category is required.",
	},
	"seating_type": {
		"required": "Seating type is required.",
	},
	"description": {
		"max": "Description cannot exceed 5000 characters.",
	},
}

func (r *EventInfoRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Location = strings.TrimSpace(r.Location)
	r.Category = strings.TrimSpace(r.Category)
	r.SeatingType = strings.TrimSpace(r.SeatingType)
	r.Description = strings.TrimSpace(r.Description)
}

// Validate runs the field rules, the closed-set checks ("invalid choice" is
// distinct from "missing"), and the not-in-the-past rules against now.
func (r *EventInfoRequest) Validate(now time.Time) helper.FieldErrors {
	fe := helper.CollectFieldErrors(helper.Validate.Struct(r), eventInfoMessages)

	if r.Category != "" && !eventModel.ValidCategory(r.Category) {
		fe.Add("category", "Select a valid event category.")
	}
	if r.SeatingType != "" && !eventModel.ValidSeatingType(r.SeatingType) {
		fe.Add("seating_type", "Select a valid seating type.")
	}

	if fe["date"] == nil {
		parsed, err := time.ParseInLocation("2006-01-02", r.Date, now.Location())
		if err != nil {
			fe.Add("date", "Enter a valid date (YYYY-MM-DD).")
		} else {
			r.date = parsed
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if parsed.Before(today) {
				fe.Add("date", "Event date cannot be in the past.")
			}
		}
	}

	if fe["time"] == nil {
		parsed, err := time.Parse("15:04", r.Time)
		if err != nil {
			fe.Add("time", "Enter a valid time (HH:MM).")
		} else {
			r.clock = time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute

			// only when the event is today does the wall clock constrain the time
			if fe["date"] == nil && !r.date.IsZero() && sameDay(r.date, now) {
				nowClock := time.Duration(now.Hour())*time.Hour +
					time.Duration(now.Minute())*time.Minute
				if r.clock < nowClock {
					fe.Add("time", "Event time cannot be in the past.")
				}
			}
		}
	}

	return fe
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ApplyToModel writes the validated info block onto a model.
func (r *EventInfoRequest) ApplyToModel(m *eventModel.EventModel) {
	m.Name = r.Name
	m.Date = datatypes.Date(r.date)
	m.Time = datatypes.NewTime(int(r.clock.Hours()), int(r.clock.Minutes())%60, 0, 0)
	m.Location = r.Location
	m.Category = r.Category
	m.Description = r.Description
	m.SeatingType = r.SeatingType
}

/* =======================================================
   Price zone rows (repeatable group, minimum 1)
   ======================================================= */

type ZoneRequest struct {
	ZoneName  string `json:"zone_name" form:"zone_name"`
	ZonePrice string `json:"zone_price" form:"zone_price"`
	ZoneSeats string `json:"zone_seats" form:"zone_seats"`

	price float64
	seats int
}

type CreateEventRequest struct {
	EventInfoRequest
	Zones []ZoneRequest `json:"zones"`
}

// Validate checks the info block, then every zone row. Zone errors are keyed
// zones-<i>-<field>; an empty collection fails once at the "zones" key.
func (r *CreateEventRequest) Validate(now time.Time) helper.FieldErrors {
	fe := r.EventInfoRequest.Validate(now)

	if len(r.Zones) == 0 {
		fe.Add("zones", "At least one price zone is required.")
		return fe
	}

	for i := range r.Zones {
		z := &r.Zones[i]
		z.ZoneName = strings.TrimSpace(z.ZoneName)
		z.ZonePrice = strings.TrimSpace(z.ZonePrice)
		z.ZoneSeats = strings.TrimSpace(z.ZoneSeats)

		key := func(field string) string { return fmt.Sprintf("zones-%d-%s", i, field) }

		switch {
		case z.ZoneName == "":
			fe.Add(key("zone_name"), "Zone name is required.")
		case len(z.ZoneName) > 50:
			fe.Add(key("zone_name"), "Zone name cannot exceed 50 characters.")
		}

		switch {
		case z.ZonePrice == "":
			fe.Add(key("zone_price"), "Zone price is required.")
		case !rePrice.MatchString(z.ZonePrice):
			fe.Add(key("zone_price"), "Enter a valid price with at most 2 decimal places.")
		default:
			price, err := strconv.ParseFloat(z.ZonePrice, 64)
			if err != nil || math.IsInf(price, 0) {
				fe.Add(key("zone_price"), "Enter a valid price with at most 2 decimal places.")
			} else {
				z.price = price
			}
		}

		switch {
		case z.ZoneSeats == "":
			fe.Add(key("zone_seats"), "Zone seats is required.")
		default:
			seats, err := strconv.Atoi(z.ZoneSeats)
			if err != nil {
				fe.Add(key("zone_seats"), "Seats must be a whole number.")
			} else if seats < 1 {
				fe.Add(key("zone_seats"), "At least 1 seat is required.")
			} else {
				z.seats = seats
			}
		}
	}

	return fe
}

// ToModel assembles the event plus its zone rows; call only after Validate
// passes.
func (r *CreateEventRequest) ToModel(organizerID uuid.UUID) *eventModel.EventModel {
	ev := &eventModel.EventModel{OrganizerID: organizerID}
	r.ApplyToModel(ev)
	for _, z := range r.Zones {
		ev.PriceZones = append(ev.PriceZones, eventModel.EventPriceZoneModel{
			ZoneName:  z.ZoneName,
			ZonePrice: z.price,
			ZoneSeats: z.seats,
		})
	}
	return ev
}

type UpdateEventRequest struct {
	EventInfoRequest
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	ZoneName  string    `json:"zone_name"`
	ZonePrice float64   `json:"zone_price"`
	ZoneSeats int       `json:"zone_seats"`
}

type ImageResponse struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"image_url"`
}

type EventResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	SeatingType string          `json:"seating_type"`
	OrganizerID uuid.UUID       `json:"organizer_id"`
	PriceZones  []ZoneResponse  `json:"price_zones"`
	Images      []ImageResponse `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToEventResponse(ev *eventModel.EventModel) EventResponse {
	resp := EventResponse{
		ID:          ev.ID,
		Name:        ev.Name,
		Date:        time.Time(ev.Date).Format("2006-01-02"),
		Time:        formatClock(ev.Time),
		Location:    ev.Location,
		Category:    ev.Category,
		Description: ev.Description,
		SeatingType: ev.SeatingType,
		OrganizerID: ev.OrganizerID,
		PriceZones:  []ZoneResponse{},
		Images:      []ImageResponse{},
		CreatedAt:   ev.CreatedAt,
	}
	for _, z := range ev.PriceZones {
		resp.PriceZones = append(resp.PriceZones, ZoneResponse{
			ID:        z.ID,
			ZoneName:  z.ZoneName,
			ZonePrice: z.ZonePrice,
			ZoneSeats: z.ZoneSeats,
		})
	}
	for _, img := range ev.Images {
		resp.Images = append(resp.Images, ImageResponse{ID: img.ID, ImageURL: img.ImageURL})
	}
	return resp
}

func ToEventResponses(evs []eventModel.EventModel) []EventResponse {
	out := make([]EventResponse, 0, len(evs))
	for i := range evs {
		out = append(out, ToEventResponse(&evs[i]))
	}
	return out
}

func formatClock(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
