package dto

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postEventForm(t *testing.T, fields map[string]string, files map[string]string) (*CreateEventRequest, []*multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	var gotReq *CreateEventRequest
	var gotFiles []*multipart.FileHeader

	app := fiber.New()
	app.Post("/events", func(c *fiber.Ctx) error {
		req, fhs, err := ParseCreateEventForm(c)
		if err != nil {
			return err
		}
		gotReq, gotFiles = req, fhs
		return c.SendStatus(fiber.StatusOK)
	})

	httpReq := httptest.NewRequest(http.MethodPost, "/events", body)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(httpReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return gotReq, gotFiles
}

func TestParseCreateEventForm(t *testing.T) {
	t.Run("reads info block, zone rows and files", func(t *testing.T) {
		req, files := postEventForm(t, map[string]string{
			"name":               "Summer Jazz Night",
			"date":               "2026-07-01",
			"time":               "19:30",
			"location":           "Berlin",
			"category":           "music",
			"seating_type":       "general",
			"description":        "Open air.",
			"zones-0-zone_name":  "GA",
			"zones-0-zone_price": "25.00",
			"zones-0-zone_seats": "100",
			"zones-1-zone_name":  "VIP",
			"zones-1-zone_price": "99.99",
			"zones-1-zone_seats": "20",
		}, map[string]string{
			"cover.jpg": "fake jpeg",
		})

		assert.Equal(t, "Summer Jazz Night", req.Name)
		assert.Equal(t, "2026-07-01", req.Date)
		require.Len(t, req.Zones, 2)
		assert.Equal(t, "GA", req.Zones[0].ZoneName)
		assert.Equal(t, "99.99", req.Zones[1].ZonePrice)

		require.Len(t, files, 1)
		assert.Equal(t, "cover.jpg", files[0].Filename)
	})

	t.Run("stops at the first fully empty zone row", func(t *testing.T) {
		req, _ := postEventForm(t, map[string]string{
			"name":               "Gapless",
			"zones-0-zone_name":  "GA",
			"zones-0-zone_price": "10",
			"zones-0-zone_seats": "5",
			// row 1 absent; row 2 must be ignored
			"zones-2-zone_name":  "Ghost",
			"zones-2-zone_price": "1",
			"zones-2-zone_seats": "1",
		}, nil)

		require.Len(t, req.Zones, 1)
		assert.Equal(t, "GA", req.Zones[0].ZoneName)
	})

	t.Run("partially filled row is kept for validation to reject", func(t *testing.T) {
		req, _ := postEventForm(t, map[string]string{
			"zones-0-zone_name": "GA",
		}, nil)

		require.Len(t, req.Zones, 1)
		assert.Equal(t, "", req.Zones[0].ZonePrice)
	})

	t.Run("row cap bounds the scan", func(t *testing.T) {
		fields := map[string]string{}
		for i := 0; i < maxZoneRows+10; i++ {
			fields[fmt.Sprintf("zones-%d-zone_name", i)] = fmt.Sprintf("Z%d", i)
			fields[fmt.Sprintf("zones-%d-zone_price", i)] = "1"
			fields[fmt.Sprintf("zones-%d-zone_seats", i)] = "1"
		}
		req, _ := postEventForm(t, fields, nil)
		assert.Len(t, req.Zones, maxZoneRows)
	})
}
