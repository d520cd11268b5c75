package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/admin/users", fiber.MethodGet, 200, time.Millisecond)
	m.RecordRequest("/admin/users", fiber.MethodGet, 200, time.Millisecond)
	m.RecordError("/admin/users/x/ban", fiber.MethodPost, "ALREADY_IN_STATE")

	requests, errs := m.Snapshot()
	assert.Equal(t, int64(2), requests["/admin/users|GET|200"])
	assert.Equal(t, int64(1), errs["/admin/users/x/ban|POST|ALREADY_IN_STATE"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", fiber.MethodGet, 200, 0)
	requests, _ = nilMetrics.Snapshot()
	assert.Empty(t, requests)
}

func TestRequestLogger_RecordsRenderedStatus(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	requests, _ := m.Snapshot()
	assert.Equal(t, int64(1), requests["/teapot|GET|418"])
}
