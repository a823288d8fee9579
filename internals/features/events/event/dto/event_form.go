package dto

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// zone rows beyond this are ignored; a legitimate submission never gets close
const maxZoneRows = 50

// ParseCreateEventForm reads the multipart submission: one info block,
// repeatable zones-<i>-<field> rows, and the uploaded files under "images".
func ParseCreateEventForm(c *fiber.Ctx) (*CreateEventRequest, []*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	first := func(key string) string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	req := &CreateEventRequest{
		EventInfoRequest: EventInfoRequest{
			Name:        first("name"),
			Date:        first("date"),
			Time:        first("time"),
			Location:    first("location"),
			Category:    first("category"),
			SeatingType: first("seating_type"),
			Description: first("description"),
		},
	}

	for i := 0; i < maxZoneRows; i++ {
		name := first(fmt.Sprintf("zones-%d-zone_name", i))
		price := first(fmt.Sprintf("zones-%d-zone_price", i))
		seats := first(fmt.Sprintf("zones-%d-zone_seats", i))
		if name == "" && price == "" && seats == "" {
			break
		}
		req.Zones = append(req.Zones, ZoneRequest{
			ZoneName:  name,
			ZonePrice: price,
			ZoneSeats: seats,
		})
	}

	return req, form.File["images"], nil
}
