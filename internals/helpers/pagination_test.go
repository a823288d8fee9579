package helper

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, target string) Paging {
	t.Helper()

	var got Paging
	app := fiber.New()
	app.Get("/things", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := resolveFor(t, "/things")
		assert.Equal(t, Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}, p)
	})

	t.Run("page and per_page", func(t *testing.T) {
		p := resolveFor(t, "/things?page=3&per_page=20")
		assert.Equal(t, Paging{Page: 3, PerPage: 20, Offset: 40, Limit: 20}, p)
	})

	t.Run("limit is an alias for per_page", func(t *testing.T) {
		p := resolveFor(t, "/things?limit=5")
		assert.Equal(t, 5, p.PerPage)
	})

	t.Run("nonsense values fall back", func(t *testing.T) {
		p := resolveFor(t, "/things?page=-4&per_page=zero")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.PerPage)
	})

	t.Run("per_page is capped", func(t *testing.T) {
		p := resolveFor(t, "/things?per_page=9999")
		assert.Equal(t, 100, p.PerPage)
	})
}

func TestBuildPagination(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := BuildPagination(45, 2, 10)
		assert.Equal(t, 5, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := BuildPagination(45, 5, 10)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty set", func(t *testing.T) {
		p := BuildPagination(0, 1, 10)
		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})
}
