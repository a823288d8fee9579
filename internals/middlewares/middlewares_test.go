package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerArmsUserContextDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool

	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error {
		deadline, ok = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	start := time.Now()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.True(t, ok, "user context must carry a deadline")
	assert.WithinDuration(t, start.Add(requestTimeout), deadline, 2*time.Second)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("generates one when absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	})
}
