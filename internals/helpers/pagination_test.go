package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, target string) Paging {
	t.Helper()

	app := fiber.New()
	var p Paging
	app.Get("/", func(c *fiber.Ctx) error {
		p = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	return p
}

func TestResolvePagingComputesLimitAndOffset(t *testing.T) {
	p := resolveFor(t, "/?page=3&per_page=15")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, 30, p.Offset)
}

func TestResolvePagingDefaults(t *testing.T) {
	p := resolveFor(t, "/")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestResolvePagingClampsAndAliases(t *testing.T) {
	p := resolveFor(t, "/?page=0&limit=500")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(45, Paging{Page: 2, PerPage: 20})

	assert.Equal(t, int64(45), pg.Total)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
}
